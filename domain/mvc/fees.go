package mvc

import (
	"context"

	"github.com/osmosis-labs/feewatch/domain"
)

// FeesUsecase represents the fee store contract consumed by delivery layers.
type FeesUsecase interface {
	// CurrentSnapshot returns the latest published snapshot.
	// Returns the zero snapshot before the first successful fetch. Never blocks.
	CurrentSnapshot() domain.FeeSnapshot

	// CurrentIndicator returns the tier of the latest published fastest fee.
	CurrentIndicator() domain.FeeTier

	// CurrentState returns the latest snapshot, its retrieval time and staleness from a single read.
	// A snapshot is stale if it was retrieved more than twice the fetch interval ago.
	// Returns domain.ErrNoFeesRetrieved, alongside a zero stale state, before the first successful fetch.
	CurrentState() (domain.FeeState, error)

	// RefreshNow triggers one additional fetch cycle in the background.
	// Requests arriving while a previous one is still fetching are collapsed into it,
	// in which case false is returned.
	RefreshNow() bool

	// Refresh runs one fetch cycle synchronously and returns its error.
	Refresh(ctx context.Context) error

	// RegisterListener registers a listener notified on every published snapshot.
	RegisterListener(listener domain.FeeUpdateListener)
}
