package coupon

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Validator validates a coupon code against a cart subtotal and returns the
// coupon in its applied form.
type Validator interface {
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*Applied, error)
}

// RepoValidator implements Validator by looking up coupon rules from a
// Repository.
type RepoValidator struct {
	repo Repository
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{repo: repo}
}

// Validate looks up the rule for the given code and checks the subtotal
// against its minimum order amount. It returns ErrUnknownCode for missing or
// inactive codes and a MinimumNotMetError when the subtotal is too low.
func (v *RepoValidator) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*Applied, error) {
	rule, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrUnknownCode) {
			return nil, ErrUnknownCode
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	if !rule.Active {
		return nil, ErrUnknownCode
	}

	if subtotal.LessThan(rule.MinOrder) {
		return nil, &MinimumNotMetError{Code: rule.Code, MinOrder: rule.MinOrder}
	}

	return &Applied{
		Code:        rule.Code,
		Percentage:  rule.Percentage,
		MinOrder:    rule.MinOrder,
		Description: rule.Description,
	}, nil
}
