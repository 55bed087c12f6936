package mocks

import (
	"context"
	"time"

	"github.com/osmosis-labs/feewatch/domain"
)

var _ domain.FeeUpdateListener = &FeeUpdateListenerMock{}

// FeeUpdateListenerMock records every snapshot it is notified of.
type FeeUpdateListenerMock struct {
	OnFeeUpdateFunc func(ctx context.Context, snapshot domain.FeeSnapshot, retrievedAt time.Time) error

	Snapshots []domain.FeeSnapshot
}

func (m *FeeUpdateListenerMock) OnFeeUpdate(ctx context.Context, snapshot domain.FeeSnapshot, retrievedAt time.Time) error {
	m.Snapshots = append(m.Snapshots, snapshot)
	if m.OnFeeUpdateFunc != nil {
		return m.OnFeeUpdateFunc(ctx, snapshot, retrievedAt)
	}
	return nil
}
