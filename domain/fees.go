package domain

import (
	"context"
	"fmt"
	"time"
)

// FeeSnapshot is the set of recommended fee rates, in sat/vB, as of one successful fetch.
// No ordering between the fields is assumed.
type FeeSnapshot struct {
	FastestFee  uint64 `json:"fastestFee"`
	HalfHourFee uint64 `json:"halfHourFee"`
	HourFee     uint64 `json:"hourFee"`
	EconomyFee  uint64 `json:"economyFee"`
	MinimumFee  uint64 `json:"minimumFee"`
}

// FeeState is the latest snapshot read together with its retrieval time.
// RetrievedAt is zero before the first successful fetch.
type FeeState struct {
	Snapshot    FeeSnapshot
	RetrievedAt time.Time
	IsStale     bool
}

// Tier returns the fee tier of the fastest fee.
func (s FeeSnapshot) Tier() FeeTier {
	return FeeTierFor(s.FastestFee)
}

// Label renders the snapshot the way it is shown in a status bar,
// e.g. "🔵 7 sat/vB".
func (s FeeSnapshot) Label() string {
	return fmt.Sprintf("%s %d sat/vB", s.Tier().Emoji(), s.FastestFee)
}

// FeeTier is a congestion classification of the fastest fee.
type FeeTier int

const (
	FeeTierMinimal FeeTier = iota
	FeeTierLow
	FeeTierMedium
	FeeTierHigh
	FeeTierVeryHigh
	FeeTierExtreme
)

// FeeTierFor classifies the fastest fee into one of six tiers.
// Bands are inclusive and evaluated in order. Zero and anything above 100
// fall into FeeTierExtreme.
func FeeTierFor(fastestFee uint64) FeeTier {
	switch {
	case fastestFee >= 1 && fastestFee <= 5:
		return FeeTierMinimal
	case fastestFee >= 6 && fastestFee <= 10:
		return FeeTierLow
	case fastestFee >= 11 && fastestFee <= 30:
		return FeeTierMedium
	case fastestFee >= 31 && fastestFee <= 50:
		return FeeTierHigh
	case fastestFee >= 51 && fastestFee <= 100:
		return FeeTierVeryHigh
	default:
		return FeeTierExtreme
	}
}

// String implements fmt.Stringer.
func (t FeeTier) String() string {
	switch t {
	case FeeTierMinimal:
		return "minimal"
	case FeeTierLow:
		return "low"
	case FeeTierMedium:
		return "medium"
	case FeeTierHigh:
		return "high"
	case FeeTierVeryHigh:
		return "very_high"
	case FeeTierExtreme:
		return "extreme"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Emoji returns the colored marker of the tier.
// Minimal and low are both low congestion but keep distinct colors.
func (t FeeTier) Emoji() string {
	switch t {
	case FeeTierMinimal:
		return "🟢"
	case FeeTierLow:
		return "🔵"
	case FeeTierMedium:
		return "🟡"
	case FeeTierHigh:
		return "🟠"
	case FeeTierVeryHigh:
		return "🔴"
	default:
		return "🟣"
	}
}

// MarshalText implements encoding.TextMarshaler so that tiers
// are rendered by name in JSON responses.
func (t FeeTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// FeeClient retrieves recommended fees from a remote source.
type FeeClient interface {
	// GetRecommendedFees performs exactly one request and returns the decoded snapshot.
	// Errors are one of TransportError, ProtocolError or DecodeError.
	GetRecommendedFees(ctx context.Context) (FeeSnapshot, error)
}

// FeeUpdateListener is notified every time a new fee snapshot is published.
type FeeUpdateListener interface {
	// OnFeeUpdate notifies the listener of the new snapshot and the time it was retrieved.
	OnFeeUpdate(ctx context.Context, snapshot FeeSnapshot, retrievedAt time.Time) error
}
