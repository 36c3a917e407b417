package order

import "github.com/go-faster/errors"

// Status is the closed order status vocabulary. The flow is linear and
// admin-driven; there are no automatic transitions.
type Status string

const (
	StatusPlaced         Status = "Order Placed"
	StatusConfirmed      Status = "Confirmed"
	StatusPacking        Status = "Packing"
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// ErrInvalidStatus is returned by ParseStatus for values outside the
// vocabulary.
var ErrInvalidStatus = errors.New("invalid order status")

// ErrInvalidTransition is returned when a status change violates the
// transition table.
var ErrInvalidTransition = errors.New("invalid status transition")

// next maps each status to its single forward successor.
var next = map[Status]Status{
	StatusPlaced:         StatusConfirmed,
	StatusConfirmed:      StatusPacking,
	StatusPacking:        StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// ParseStatus validates a status value coming from the outside.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPlaced, StatusConfirmed, StatusPacking, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
}

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from one status to
// another: one step forward along the linear flow, or to Cancelled from any
// non-terminal state.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return next[from] == to
}
