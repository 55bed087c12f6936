package mocks

import (
	"context"

	"github.com/osmosis-labs/feewatch/domain"
)

var _ domain.FeeClient = &FeeClientMock{}

// FeeClientMock is a mock implementation of the FeeClient interface
type FeeClientMock struct {
	GetRecommendedFeesFunc func(ctx context.Context) (domain.FeeSnapshot, error)
}

func (m *FeeClientMock) GetRecommendedFees(ctx context.Context) (domain.FeeSnapshot, error) {
	if m.GetRecommendedFeesFunc != nil {
		return m.GetRecommendedFeesFunc(ctx)
	}
	panic("unimplemented")
}
