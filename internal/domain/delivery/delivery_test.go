package delivery

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	for _, valid := range []string{"standard", "express", "emergency"} {
		tier, err := ParseTier(valid)
		require.NoError(t, err)
		assert.Equal(t, Tier(valid), tier)
	}

	for _, invalid := range []string{"", "Standard", "overnight", "EXPRESS"} {
		_, err := ParseTier(invalid)
		assert.ErrorIs(t, err, ErrUnknownTier, "input %q", invalid)
	}
}

func TestFee(t *testing.T) {
	tests := []struct {
		name     string
		tier     Tier
		subtotal int64
		want     int64
	}{
		{"standard below threshold", TierStandard, 498, 49},
		{"standard at threshold", TierStandard, 499, 0},
		{"standard above threshold", TierStandard, 2000, 0},
		{"standard empty cart", TierStandard, 0, 49},
		{"express below threshold", TierExpress, 100, 99},
		{"express above threshold", TierExpress, 5000, 99},
		{"emergency below threshold", TierEmergency, 100, 149},
		{"emergency above threshold", TierEmergency, 5000, 149},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fee(tt.tier, decimal.NewFromInt(tt.subtotal))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestAmountForFreeDelivery(t *testing.T) {
	got := AmountForFreeDelivery(TierStandard, decimal.NewFromInt(400))
	assert.True(t, got.Equal(decimal.NewFromInt(99)), "got %s", got)

	got = AmountForFreeDelivery(TierStandard, decimal.NewFromInt(499))
	assert.True(t, got.IsZero())

	got = AmountForFreeDelivery(TierStandard, decimal.NewFromInt(600))
	assert.True(t, got.IsZero())

	// Flat-fee tiers have no free-delivery concept.
	assert.True(t, AmountForFreeDelivery(TierExpress, decimal.NewFromInt(100)).IsZero())
	assert.True(t, AmountForFreeDelivery(TierEmergency, decimal.NewFromInt(100)).IsZero())
}
