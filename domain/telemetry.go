package domain

import "github.com/prometheus/client_golang/prometheus"

var (
	// feewatch_fees_fetch_error_total
	//
	// counter that measures the number of failed fee fetch cycles
	//
	// Has the following labels:
	// * kind - the kind of error (transport, protocol, decode)
	FeeWatchFetchErrorCounterMetricName = "feewatch_fees_fetch_error_total"

	// feewatch_fees_fetch_success_total
	//
	// counter that measures the number of successful fee fetch cycles
	FeeWatchFetchSuccessCounterMetricName = "feewatch_fees_fetch_success_total"

	// feewatch_fees_fetch_duration
	//
	// gauge that tracks duration of the latest fee fetch in milliseconds
	FeeWatchFetchDurationMetricName = "feewatch_fees_fetch_duration"

	// feewatch_fees_sat_per_vbyte
	//
	// gauge that tracks the latest published fee rates
	//
	// Has the following labels:
	// * target - the confirmation target (fastest, half_hour, hour, economy, minimum)
	FeeWatchFeeRateMetricName = "feewatch_fees_sat_per_vbyte"

	// feewatch_fees_last_update_timestamp_seconds
	//
	// gauge that tracks the unix time of the latest published snapshot
	FeeWatchLastUpdateTimestampMetricName = "feewatch_fees_last_update_timestamp_seconds"

	FeeWatchFetchErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: FeeWatchFetchErrorCounterMetricName,
			Help: "Total number of failed fee fetch cycles",
		},
		[]string{"kind"},
	)
	FeeWatchFetchSuccessCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: FeeWatchFetchSuccessCounterMetricName,
			Help: "Total number of successful fee fetch cycles",
		},
	)
	FeeWatchFetchDurationGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: FeeWatchFetchDurationMetricName,
			Help: "Duration of the latest fee fetch in milliseconds",
		},
	)
	FeeWatchFeeRateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: FeeWatchFeeRateMetricName,
			Help: "Latest published fee rate in sat/vB per confirmation target",
		},
		[]string{"target"},
	)
	FeeWatchLastUpdateTimestampGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: FeeWatchLastUpdateTimestampMetricName,
			Help: "Unix time of the latest published fee snapshot",
		},
	)
)

func init() {
	prometheus.MustRegister(FeeWatchFetchErrorCounter)
	prometheus.MustRegister(FeeWatchFetchSuccessCounter)
	prometheus.MustRegister(FeeWatchFetchDurationGauge)
	prometheus.MustRegister(FeeWatchFeeRateGauge)
	prometheus.MustRegister(FeeWatchLastUpdateTimestampGauge)
}
