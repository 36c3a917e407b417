// Package cart implements the shopping cart aggregate: line items keyed by
// (product, variation), the selected delivery tier, an optional applied
// coupon, and the derived pricing values.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/suudhaa/grocer-api/internal/domain/coupon"
	"github.com/suudhaa/grocer-api/internal/domain/delivery"
)

// LineItem is one product+variation entry in a cart with its own quantity.
// Quantity is always >= 1; a quantity update to zero or below removes the
// line item entirely.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Variation string          `json:"variation"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// Cart is an ordered collection of line items plus the selected delivery
// tier and at most one applied coupon. Insertion order is irrelevant for
// totals but preserved for display.
type Cart struct {
	Items  []LineItem      `json:"items"`
	Tier   delivery.Tier   `json:"deliveryTier"`
	Coupon *coupon.Applied `json:"coupon,omitempty"`
}

// New returns an empty cart on the default Standard tier.
func New() *Cart {
	return &Cart{Tier: delivery.TierStandard}
}

// find returns the index of the line item with the given identity key,
// or -1 when absent.
func (c *Cart) find(productID, variation string) int {
	for i, item := range c.Items {
		if item.ProductID == productID && item.Variation == variation {
			return i
		}
	}
	return -1
}

// AddItem adds one unit of the given product+variation. If a matching line
// item exists its quantity is incremented; otherwise a new line item with
// quantity 1 is appended. It always succeeds.
func (c *Cart) AddItem(item LineItem) {
	if i := c.find(item.ProductID, item.Variation); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// RemoveItem deletes the matching line item. Removing an absent item is a
// no-op, not an error.
func (c *Cart) RemoveItem(productID, variation string) {
	if i := c.find(productID, variation); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of the matching line item. A quantity of
// zero or below behaves as RemoveItem. Updating an absent item is a no-op.
func (c *Cart) UpdateQuantity(productID, variation string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID, variation)
		return
	}
	if i := c.find(productID, variation); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// Clear empties the line items, unsets the coupon, and resets the tier to
// Standard so a fresh checkout always starts from the default.
func (c *Cart) Clear() {
	c.Items = nil
	c.Coupon = nil
	c.Tier = delivery.TierStandard
}

// SelectTier switches the delivery tier.
func (c *Cart) SelectTier(tier delivery.Tier) {
	c.Tier = tier
}

// Subtotal is the sum of unit price times quantity over all line items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// ItemCount is the number of distinct line items, not the sum of quantities.
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// DeliveryFee is fully determined by the selected tier and the subtotal.
func (c *Cart) DeliveryFee() decimal.Decimal {
	return delivery.Fee(c.Tier, c.Subtotal())
}

// Discount is the applied coupon's discount against the subtotal, or zero
// when no coupon is applied.
func (c *Cart) Discount() decimal.Decimal {
	return c.Coupon.Discount(c.Subtotal())
}

// Total is subtotal + delivery fee - discount, never negative.
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal().Add(c.DeliveryFee()).Sub(c.Discount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// AmountForFreeDelivery is how much more must be spent to reach free
// delivery on the Standard tier; zero on other tiers.
func (c *Cart) AmountForFreeDelivery() decimal.Decimal {
	return delivery.AmountForFreeDelivery(c.Tier, c.Subtotal())
}
