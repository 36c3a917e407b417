package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-faster/errors"

	"github.com/suudhaa/grocer-api/internal/domain/coupon"
	"github.com/suudhaa/grocer-api/internal/domain/delivery"
)

// Snapshots is the durable key-value slot carts are mirrored to. Get returns
// nil data when no snapshot exists for the key.
type Snapshots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// Observer is notified after every cart mutation with the session key and
// the mutated cart.
type Observer func(sessionKey string, c *Cart)

// Store owns one cart per session. It is constructed once and passed by
// reference to whatever needs it; mutations are serialized per store,
// written through to the snapshot slot, and fanned out to observers.
//
// A cart is restored from its snapshot the first time a session key is
// seen. A corrupt snapshot yields an empty cart rather than an error.
type Store struct {
	snapshots Snapshots
	coupons   coupon.Validator

	mu        sync.Mutex
	carts     map[string]*Cart
	observers []Observer
}

// NewStore creates a cart store backed by the given snapshot slot and
// coupon validator.
func NewStore(snapshots Snapshots, coupons coupon.Validator) *Store {
	return &Store{
		snapshots: snapshots,
		coupons:   coupons,
		carts:     make(map[string]*Cart),
	}
}

// Subscribe registers an observer. Must be called before the store is
// shared; observers are invoked synchronously after each mutation.
func (s *Store) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Restore decodes a snapshot into a cart. Corrupt or empty snapshots yield
// an empty cart.
func Restore(data []byte) *Cart {
	if len(data) == 0 {
		return New()
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return New()
	}
	if _, err := delivery.ParseTier(string(c.Tier)); err != nil {
		c.Tier = delivery.TierStandard
	}
	// Drop any line items a stale snapshot stored with a bad quantity.
	items := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity >= 1 {
			items = append(items, item)
		}
	}
	c.Items = items
	return &c
}

// get returns the session's cart, restoring it from the snapshot slot on
// first access. Caller must hold s.mu.
func (s *Store) get(ctx context.Context, key string) (*Cart, error) {
	if c, ok := s.carts[key]; ok {
		return c, nil
	}
	data, err := s.snapshots.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(err, "load cart snapshot")
	}
	c := Restore(data)
	s.carts[key] = c
	return c, nil
}

// Get returns a copy of the session's current cart.
func (s *Store) Get(ctx context.Context, key string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.get(ctx, key)
	if err != nil {
		return Cart{}, err
	}
	return snapshotOf(c), nil
}

// mutate runs fn against a working copy of the session's cart, persists the
// result, commits it, and notifies observers. When fn or the snapshot write
// fails the stored cart is left untouched and nothing is persisted.
func (s *Store) mutate(ctx context.Context, key string, fn func(c *Cart) error) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.get(ctx, key)
	if err != nil {
		return Cart{}, err
	}

	working := snapshotOf(current)
	if err := fn(&working); err != nil {
		return Cart{}, err
	}

	data, err := json.Marshal(&working)
	if err != nil {
		return Cart{}, errors.Wrap(err, "encode cart snapshot")
	}
	if err := s.snapshots.Set(ctx, key, data); err != nil {
		return Cart{}, errors.Wrap(err, "persist cart snapshot")
	}

	*current = working
	for _, fn := range s.observers {
		fn(key, current)
	}
	return snapshotOf(current), nil
}

// AddItem adds one unit of the product+variation to the session's cart.
func (s *Store) AddItem(ctx context.Context, key string, item LineItem) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.AddItem(item)
		return nil
	})
}

// RemoveItem removes the matching line item from the session's cart.
func (s *Store) RemoveItem(ctx context.Context, key, productID, variation string) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.RemoveItem(productID, variation)
		return nil
	})
}

// UpdateQuantity sets the line item quantity; zero or below removes it.
func (s *Store) UpdateQuantity(ctx context.Context, key, productID, variation string, quantity int) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.UpdateQuantity(productID, variation, quantity)
		return nil
	})
}

// SelectTier switches the session cart's delivery tier.
func (s *Store) SelectTier(ctx context.Context, key string, tier delivery.Tier) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.SelectTier(tier)
		return nil
	})
}

// ApplyCoupon validates the code against the cart's subtotal and, on
// success, replaces any previously applied coupon. On failure the prior
// coupon (if any) stays applied.
func (s *Store) ApplyCoupon(ctx context.Context, key, code string) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		applied, err := s.coupons.Validate(ctx, code, c.Subtotal())
		if err != nil {
			return err
		}
		c.Coupon = applied
		return nil
	})
}

// RemoveCoupon detaches any applied coupon.
func (s *Store) RemoveCoupon(ctx context.Context, key string) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.Coupon = nil
		return nil
	})
}

// Clear empties the session's cart.
func (s *Store) Clear(ctx context.Context, key string) (Cart, error) {
	return s.mutate(ctx, key, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// snapshotOf returns a detached copy so callers cannot mutate store state
// through the returned value.
func snapshotOf(c *Cart) Cart {
	out := Cart{Tier: c.Tier}
	out.Items = append([]LineItem(nil), c.Items...)
	if c.Coupon != nil {
		cp := *c.Coupon
		out.Coupon = &cp
	}
	return out
}
