package usecase

import (
	"context"
	"time"

	"github.com/osmosis-labs/feewatch/domain"
)

type telemetryListener struct{}

var _ domain.FeeUpdateListener = &telemetryListener{}

// NewTelemetryListener returns a listener that mirrors every published
// snapshot into the fee rate gauges.
func NewTelemetryListener() domain.FeeUpdateListener {
	return &telemetryListener{}
}

// OnFeeUpdate implements domain.FeeUpdateListener.
func (t *telemetryListener) OnFeeUpdate(_ context.Context, snapshot domain.FeeSnapshot, retrievedAt time.Time) error {
	domain.FeeWatchFeeRateGauge.WithLabelValues("fastest").Set(float64(snapshot.FastestFee))
	domain.FeeWatchFeeRateGauge.WithLabelValues("half_hour").Set(float64(snapshot.HalfHourFee))
	domain.FeeWatchFeeRateGauge.WithLabelValues("hour").Set(float64(snapshot.HourFee))
	domain.FeeWatchFeeRateGauge.WithLabelValues("economy").Set(float64(snapshot.EconomyFee))
	domain.FeeWatchFeeRateGauge.WithLabelValues("minimum").Set(float64(snapshot.MinimumFee))

	domain.FeeWatchLastUpdateTimestampGauge.Set(float64(retrievedAt.Unix()))

	return nil
}
