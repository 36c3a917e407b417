package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suudhaa/grocer-api/internal/domain/coupon"
	"github.com/suudhaa/grocer-api/internal/domain/delivery"
)

func item(id, variation string, price int64) LineItem {
	return LineItem{ProductID: id, Name: id, UnitPrice: decimal.NewFromInt(price), Variation: variation}
}

func TestAddItem_IncrementsExisting(t *testing.T) {
	c := New()

	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("veg-tomato", "1 kg", 80))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddItem_VariationIsSeparateLine(t *testing.T) {
	c := New()

	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("veg-tomato", "2 kg", 150))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
	assert.Equal(t, 2, c.ItemCount())
}

func TestRemoveItem(t *testing.T) {
	c := New()
	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("fruit-apple", "", 250))

	c.RemoveItem("veg-tomato", "1 kg")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "fruit-apple", c.Items[0].ProductID)

	// Removing an absent item is a no-op.
	c.RemoveItem("veg-tomato", "1 kg")
	c.RemoveItem("no-such", "")
	assert.Len(t, c.Items, 1)
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	c.AddItem(item("veg-potato", "", 60))

	c.UpdateQuantity("veg-potato", "", 5)
	assert.Equal(t, 5, c.Items[0].Quantity)

	// Zero or below removes the line item.
	c.UpdateQuantity("veg-potato", "", 0)
	assert.Empty(t, c.Items)

	c.AddItem(item("veg-potato", "", 60))
	c.UpdateQuantity("veg-potato", "", -3)
	assert.Empty(t, c.Items)

	// Updating an absent item is a no-op.
	c.UpdateQuantity("no-such", "", 4)
	assert.Empty(t, c.Items)
}

func TestClear_ResetsEverything(t *testing.T) {
	c := New()
	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.SelectTier(delivery.TierEmergency)
	c.Coupon = &coupon.Applied{Code: "FIRST10", Percentage: decimal.NewFromInt(10)}

	c.Clear()

	assert.Empty(t, c.Items)
	assert.Nil(t, c.Coupon)
	assert.Equal(t, delivery.TierStandard, c.Tier)
}

func TestSubtotal(t *testing.T) {
	c := New()
	assert.True(t, c.Subtotal().IsZero())

	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("veg-tomato", "1 kg", 80)) // qty 2
	c.AddItem(item("fruit-apple", "", 250))

	// 2*80 + 250 = 410
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(410)), "got %s", c.Subtotal())
}

func TestItemCount_CountsDistinctLines(t *testing.T) {
	c := New()
	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("veg-tomato", "1 kg", 80))
	c.AddItem(item("fruit-apple", "", 250))

	assert.Equal(t, 2, c.ItemCount())
}

func TestTotal_Breakdown(t *testing.T) {
	c := New()
	c.AddItem(item("grain-rice-basmati", "1 kg", 220))
	c.AddItem(item("fruit-apple", "", 250))
	c.AddItem(item("veg-potato", "", 40))
	// Subtotal 510: free standard delivery.
	c.Coupon = &coupon.Applied{Code: "FIRST10", Percentage: decimal.NewFromInt(10)}

	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(510)), "subtotal %s", c.Subtotal())
	assert.True(t, c.DeliveryFee().IsZero(), "fee %s", c.DeliveryFee())
	assert.True(t, c.Discount().Equal(decimal.NewFromInt(51)), "discount %s", c.Discount())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(459)), "total %s", c.Total())
}

func TestTotal_TierChangeOnlyMovesFee(t *testing.T) {
	c := New()
	c.AddItem(item("dairy-milk", "1 L", 110))

	subtotalBefore := c.Subtotal()

	c.SelectTier(delivery.TierExpress)
	assert.True(t, c.Subtotal().Equal(subtotalBefore))
	assert.True(t, c.DeliveryFee().Equal(decimal.NewFromInt(99)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(209)), "total %s", c.Total())

	c.SelectTier(delivery.TierEmergency)
	assert.True(t, c.Subtotal().Equal(subtotalBefore))
	assert.True(t, c.DeliveryFee().Equal(decimal.NewFromInt(149)))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(259)), "total %s", c.Total())
}

func TestTotal_NeverNegative(t *testing.T) {
	c := New()
	c.AddItem(item("snack-instant-noodles", "", 25))
	c.Coupon = &coupon.Applied{Code: "MEGA", Percentage: decimal.NewFromInt(100)}

	// Subtotal 25, fee 49, discount 25 -> total 49, stays positive.
	assert.True(t, c.Total().Equal(decimal.NewFromInt(49)), "total %s", c.Total())

	// An over-generous percentage can never push the total below zero.
	c.Coupon = &coupon.Applied{Code: "BROKEN", Percentage: decimal.NewFromInt(500)}
	assert.False(t, c.Total().IsNegative())
}

func TestAmountForFreeDelivery(t *testing.T) {
	c := New()
	c.AddItem(item("fruit-apple", "", 250))

	got := c.AmountForFreeDelivery()
	assert.True(t, got.Equal(decimal.NewFromInt(249)), "got %s", got)

	c.SelectTier(delivery.TierExpress)
	assert.True(t, c.AmountForFreeDelivery().IsZero())
}
