package order

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/suudhaa/grocer-api/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries field-level reasons for a rejected checkout form.
// No partial order is created when validation fails.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	reasons := make([]string, 0, len(e.Fields))
	for field, reason := range e.Fields {
		reasons = append(reasons, field+": "+reason)
	}
	return "invalid checkout form: " + strings.Join(reasons, "; ")
}

// CheckoutForm is the customer input collected at checkout.
type CheckoutForm struct {
	FullName      string
	Phone         string
	Address       Address
	PaymentMethod PaymentMethod
}

// validate returns nil when the form satisfies all checkout preconditions.
func (f *CheckoutForm) validate() *ValidationError {
	fields := make(map[string]string)

	if strings.TrimSpace(f.FullName) == "" {
		fields["fullName"] = "name is required"
	}
	if !isTenDigits(f.Phone) {
		fields["phone"] = "valid 10-digit phone required"
	}
	if strings.TrimSpace(f.Address.Area) == "" {
		fields["address.area"] = "area is required"
	}
	if f.Address.Ward <= 0 {
		fields["address.ward"] = "ward number is required"
	}
	if strings.TrimSpace(f.Address.Street) == "" {
		fields["address.street"] = "street name is required"
	}
	if strings.TrimSpace(f.Address.NearbyPlace) == "" {
		fields["address.nearbyPlace"] = "nearby famous place is required"
	}
	if !f.PaymentMethod.Available() {
		fields["paymentMethod"] = "payment method not available"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Service assembles orders from carts and checkout forms and hands them to
// the persistence gateway.
type Service struct {
	carts  *cart.Store
	orders Repository

	now    func() time.Time
	serial func() int
}

// NewService creates an order Service over the given cart store and order
// repository.
func NewService(carts *cart.Store, orders Repository) *Service {
	return &Service{
		carts:  carts,
		orders: orders,
		now:    time.Now,
		serial: func() int { return rand.IntN(1000) },
	}
}

// PlaceOrder validates the checkout form against the session's cart,
// assembles the immutable order record with pricing computed as of this
// instant, and persists it. On persistence failure the cart is left exactly
// as it was so the customer can retry; on success the cart is cleared.
func (s *Service) PlaceOrder(ctx context.Context, sessionKey, customerID string, form CheckoutForm) (*Order, error) {
	c, err := s.carts.Get(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if c.ItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	if verr := form.validate(); verr != nil {
		return nil, verr
	}

	now := s.now()
	subtotal := c.Subtotal()

	couponCode := ""
	if c.Coupon != nil {
		couponCode = c.Coupon.Code
	}

	o := &Order{
		ID:            uuid.New().String(),
		OrderID:       GenerateOrderID(form.Address.Ward, form.Phone, now, s.serial()),
		CustomerID:    customerID,
		CustomerName:  strings.TrimSpace(form.FullName),
		CustomerPhone: form.Phone,
		Address:       form.Address,
		Items:         append([]cart.LineItem(nil), c.Items...),
		Tier:          c.Tier,
		DeliveryFee:   c.DeliveryFee(),
		Subtotal:      subtotal,
		Discount:      c.Discount(),
		CouponCode:    couponCode,
		Total:         c.Total(),
		PaymentMethod: form.PaymentMethod,
		Status:        StatusPlaced,
		CreatedAt:     now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	// The order exists from here on; a failed cart cleanup must not undo
	// the placement. The next mutation rewrites the snapshot anyway.
	_, _ = s.carts.Clear(ctx, sessionKey)
	return o, nil
}

// ChangeStatus moves an order along the status machine, rejecting
// transitions outside the table. The core never calls this on its own; it
// exists for the admin workflow.
func (s *Service) ChangeStatus(ctx context.Context, id string, to Status) error {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "get order")
	}
	if !CanTransition(o.Status, to) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", o.Status, to)
	}
	if err := s.orders.UpdateStatus(ctx, id, to); err != nil {
		return errors.Wrap(err, "update status")
	}
	return nil
}
