package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/osmosis-labs/feewatch/domain"
)

func TestFeeTierFor(t *testing.T) {
	tests := []struct {
		fastestFee uint64
		expected   domain.FeeTier
	}{
		{0, domain.FeeTierExtreme},
		{1, domain.FeeTierMinimal},
		{5, domain.FeeTierMinimal},
		{6, domain.FeeTierLow},
		{10, domain.FeeTierLow},
		{11, domain.FeeTierMedium},
		{30, domain.FeeTierMedium},
		{31, domain.FeeTierHigh},
		{50, domain.FeeTierHigh},
		{51, domain.FeeTierVeryHigh},
		{100, domain.FeeTierVeryHigh},
		{101, domain.FeeTierExtreme},
		{1000, domain.FeeTierExtreme},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, domain.FeeTierFor(tc.fastestFee), "fastest fee %d", tc.fastestFee)
	}
}

// TestFeeTier_DistinctLowTiers ensures the two low congestion bands stay distinguishable.
func TestFeeTier_DistinctLowTiers(t *testing.T) {
	assert.NotEqual(t, domain.FeeTierFor(5), domain.FeeTierFor(6))
	assert.NotEqual(t, domain.FeeTierMinimal.Emoji(), domain.FeeTierLow.Emoji())

	seen := map[string]bool{}
	for tier := domain.FeeTierMinimal; tier <= domain.FeeTierExtreme; tier++ {
		assert.False(t, seen[tier.Emoji()], "duplicate emoji for %s", tier)
		seen[tier.Emoji()] = true
	}
}

func TestFeeSnapshot_TierOnlyDependsOnFastestFee(t *testing.T) {
	a := domain.FeeSnapshot{FastestFee: 7, HalfHourFee: 5, HourFee: 3, EconomyFee: 2, MinimumFee: 1}
	b := domain.FeeSnapshot{FastestFee: 7, HalfHourFee: 900, HourFee: 0, EconomyFee: 12, MinimumFee: 40}

	assert.Equal(t, domain.FeeTierLow, a.Tier())
	assert.Equal(t, a.Tier(), b.Tier())
	assert.Equal(t, domain.FeeTierExtreme, domain.FeeSnapshot{}.Tier())
}

func TestFeeSnapshot_Label(t *testing.T) {
	assert.Equal(t, "🔵 7 sat/vB", domain.FeeSnapshot{FastestFee: 7}.Label())
	assert.Equal(t, "🟣 0 sat/vB", domain.FeeSnapshot{}.Label())
	assert.Equal(t, "🔴 64 sat/vB", domain.FeeSnapshot{FastestFee: 64}.Label())
}

func TestFeeTier_MarshalJSON(t *testing.T) {
	bz, err := json.Marshal(map[string]domain.FeeTier{"tier": domain.FeeTierVeryHigh})
	assert.NoError(t, err)
	assert.Equal(t, `{"tier":"very_high"}`, string(bz))

	assert.Equal(t, "unknown(42)", domain.FeeTier(42).String())
}
