// Package coupon implements percentage discount codes gated by a minimum
// order amount.
package coupon

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/suudhaa/grocer-api/internal/domain/money"
)

// ErrUnknownCode is returned when a coupon code is not found or inactive.
var ErrUnknownCode = errors.New("unknown coupon code")

// MinimumNotMetError indicates the cart subtotal is below the coupon's
// minimum order amount.
type MinimumNotMetError struct {
	Code     string
	MinOrder decimal.Decimal
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum order of %s required for coupon %s", money.Format(e.MinOrder), e.Code)
}

// Rule defines a coupon's discount and eligibility constraints.
type Rule struct {
	Code        string
	Percentage  decimal.Decimal // 0-100
	MinOrder    decimal.Decimal
	Description string
	Active      bool
}

// Applied is a coupon attached to a cart. At most one is applied at a time;
// applying a new one replaces any previous one.
type Applied struct {
	Code        string          `json:"code"`
	Percentage  decimal.Decimal `json:"percentage"`
	MinOrder    decimal.Decimal `json:"minOrder"`
	Description string          `json:"description"`
}

// Discount returns the discount amount for the applied coupon against the
// given subtotal. The discount is computed on the subtotal only, never on
// subtotal plus delivery fee.
func (a *Applied) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if a == nil {
		return decimal.Zero
	}
	return money.FloorAtZero(money.Percent(subtotal, a.Percentage)).Round(2)
}

// Repository provides lookup of coupon rules by code. Lookups are
// case-insensitive.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Rule, error)
}
