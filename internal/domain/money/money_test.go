package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "Rs. 0.00"},
		{"small", decimal.NewFromInt(49), "Rs. 49.00"},
		{"three digits", decimal.NewFromInt(499), "Rs. 499.00"},
		{"thousands", decimal.NewFromFloat(1234.5), "Rs. 1,234.50"},
		{"millions", decimal.NewFromInt(1234567), "Rs. 1,234,567.00"},
		{"exact grouping boundary", decimal.NewFromInt(1000), "Rs. 1,000.00"},
		{"fractional paisa rounds", decimal.NewFromFloat(10.555), "Rs. 10.56"},
		{"negative", decimal.NewFromFloat(-1250.25), "Rs. -1,250.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(510), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(51)), "got %s", got)

	got = Percent(decimal.NewFromInt(200), decimal.NewFromInt(5))
	assert.True(t, got.Equal(decimal.NewFromInt(10)), "got %s", got)

	got = Percent(decimal.Zero, decimal.NewFromInt(50))
	assert.True(t, got.IsZero())
}

func TestFloorAtZero(t *testing.T) {
	assert.True(t, FloorAtZero(decimal.NewFromInt(-5)).IsZero())
	assert.True(t, FloorAtZero(decimal.Zero).IsZero())
	assert.True(t, FloorAtZero(decimal.NewFromInt(7)).Equal(decimal.NewFromInt(7)))
}
