// Package delivery defines the delivery tiers and their fee rules.
package delivery

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Tier identifies a delivery speed option with its own fee rule.
type Tier string

const (
	// TierStandard delivers within 24-48 hours. Free above the threshold.
	TierStandard Tier = "standard"
	// TierExpress delivers same day at a flat fee.
	TierExpress Tier = "express"
	// TierEmergency delivers within hours at a flat fee.
	TierEmergency Tier = "emergency"
)

// ErrUnknownTier is returned by ParseTier for unrecognized tier names.
var ErrUnknownTier = errors.New("unknown delivery tier")

var (
	standardFee   = decimal.NewFromInt(49)
	expressFee    = decimal.NewFromInt(99)
	emergencyFee  = decimal.NewFromInt(149)
	freeThreshold = decimal.NewFromInt(499)
)

// ParseTier validates a tier name coming from the outside.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierStandard, TierExpress, TierEmergency:
		return Tier(s), nil
	default:
		return "", errors.Wrapf(ErrUnknownTier, "%q", s)
	}
}

// Fee returns the delivery fee for the given tier and cart subtotal.
// Standard delivery is free once the subtotal reaches the free threshold;
// Express and Emergency charge a flat fee regardless of subtotal.
func Fee(tier Tier, subtotal decimal.Decimal) decimal.Decimal {
	switch tier {
	case TierExpress:
		return expressFee
	case TierEmergency:
		return emergencyFee
	default:
		if subtotal.GreaterThanOrEqual(freeThreshold) {
			return decimal.Zero
		}
		return standardFee
	}
}

// AmountForFreeDelivery returns how much more must be spent to reach free
// delivery. It is only meaningful for the Standard tier; Express and
// Emergency have no free-delivery concept and always return zero.
func AmountForFreeDelivery(tier Tier, subtotal decimal.Decimal) decimal.Decimal {
	if tier != TierStandard {
		return decimal.Zero
	}
	gap := freeThreshold.Sub(subtotal)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}
