package mocks

import (
	"context"

	"github.com/osmosis-labs/feewatch/domain"
	"github.com/osmosis-labs/feewatch/domain/mvc"
)

var _ mvc.FeesUsecase = &FeesUsecaseMock{}

// FeesUsecaseMock is a mock implementation of the FeesUsecase interface
type FeesUsecaseMock struct {
	CurrentSnapshotFunc  func() domain.FeeSnapshot
	CurrentStateFunc     func() (domain.FeeState, error)
	RefreshNowFunc       func() bool
	RefreshFunc          func(ctx context.Context) error
	RegisterListenerFunc func(listener domain.FeeUpdateListener)
}

func (m *FeesUsecaseMock) CurrentSnapshot() domain.FeeSnapshot {
	if m.CurrentSnapshotFunc != nil {
		return m.CurrentSnapshotFunc()
	}
	return domain.FeeSnapshot{}
}

func (m *FeesUsecaseMock) CurrentIndicator() domain.FeeTier {
	return m.CurrentSnapshot().Tier()
}

func (m *FeesUsecaseMock) CurrentState() (domain.FeeState, error) {
	if m.CurrentStateFunc != nil {
		return m.CurrentStateFunc()
	}
	return domain.FeeState{Snapshot: m.CurrentSnapshot(), IsStale: true}, domain.ErrNoFeesRetrieved
}

func (m *FeesUsecaseMock) RefreshNow() bool {
	if m.RefreshNowFunc != nil {
		return m.RefreshNowFunc()
	}
	return true
}

func (m *FeesUsecaseMock) Refresh(ctx context.Context) error {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *FeesUsecaseMock) RegisterListener(listener domain.FeeUpdateListener) {
	if m.RegisterListenerFunc != nil {
		m.RegisterListenerFunc(listener)
	}
}
