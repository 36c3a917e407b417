// Package order implements checkout: validation of the checkout form,
// assembly of the immutable order record, human-readable order IDs, and the
// admin-driven status machine.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/suudhaa/grocer-api/internal/domain/cart"
	"github.com/suudhaa/grocer-api/internal/domain/delivery"
)

// Address is the delivery address captured at checkout.
type Address struct {
	Area        string `json:"area"`
	Ward        int    `json:"ward"`
	Street      string `json:"street"`
	HouseNo     string `json:"houseNo,omitempty"`
	NearbyPlace string `json:"nearbyPlace"`
}

// PaymentMethod enumerates the checkout payment options.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentESewa  PaymentMethod = "esewa"
	PaymentKhalti PaymentMethod = "khalti"
)

// Available reports whether the payment method can currently be used.
// The digital wallets are declared but not yet integrated.
func (m PaymentMethod) Available() bool {
	return m == PaymentCOD
}

// Order is an immutable snapshot created at checkout. ID is the persistence
// layer's unique document key; OrderID is the human-readable reference and
// may collide. After creation only Status changes, exclusively through the
// admin workflow.
type Order struct {
	ID            string
	OrderID       string
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	Address       Address
	Items         []cart.LineItem
	Tier          delivery.Tier
	DeliveryFee   decimal.Decimal
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	CouponCode    string
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	Status        Status
	CreatedAt     time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
