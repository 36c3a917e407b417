package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/suudhaa/grocer-api/internal/domain/order"
	"github.com/suudhaa/grocer-api/internal/repository"
)

func decodeCheckoutForm(data []byte) (order.CheckoutForm, error) {
	var form order.CheckoutForm
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "fullName":
			form.FullName, err = d.Str()
		case "phone":
			form.Phone, err = d.Str()
		case "paymentMethod":
			var s string
			s, err = d.Str()
			form.PaymentMethod = order.PaymentMethod(s)
		case "address":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "area":
					form.Address.Area, err = d.Str()
				case "ward":
					form.Address.Ward, err = d.Int()
				case "street":
					form.Address.Street, err = d.Str()
				case "houseNo":
					form.Address.HouseNo, err = d.Str()
				case "nearbyPlace":
					form.Address.NearbyPlace, err = d.Str()
				default:
					err = d.Skip()
				}
				return err
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return form, err
}

// PlaceOrder runs checkout for the session's cart. Validation failures map
// to 400 with field reasons; persistence failures leave the cart intact and
// map to a retryable 500.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	form, err := decodeCheckoutForm(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := sessionFrom(r.Context())
	o, err := h.orders.PlaceOrder(r.Context(), claims.Subject, claims.Subject, form)
	if err != nil {
		var verr *order.ValidationError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "cart is empty")
		case errors.As(err, &verr):
			writeValidationError(w, verr)
		default:
			writeInternalError(w, r, errors.Wrap(err, "place order"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		h.encOrder(e, o)
	})
}

// ListMyOrders returns the session customer's orders, newest first.
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orderRepo.ListByCustomer(r.Context(), sessionFrom(r.Context()).Subject)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list orders"))
		return
	}
	h.writeOrderList(w, list)
}

// GetMyOrder returns one of the session customer's orders by document key.
func (h *Handler) GetMyOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get order"))
		return
	}

	// Customers may only see their own orders.
	if o.CustomerID != sessionFrom(r.Context()).Subject {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encOrder(e, o)
	})
}

func (h *Handler) writeOrderList(w http.ResponseWriter, list []order.Order) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range list {
				h.encOrder(e, &list[i])
			}
		})
	})
}

func (h *Handler) encOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(o.ID) })
		e.Field("orderId", func(e *jx.Encoder) { e.Str(o.OrderID) })
		e.Field("customerName", func(e *jx.Encoder) { e.Str(o.CustomerName) })
		e.Field("customerPhone", func(e *jx.Encoder) { e.Str(o.CustomerPhone) })
		e.Field("deliveryAddress", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("area", func(e *jx.Encoder) { e.Str(o.Address.Area) })
				e.Field("ward", func(e *jx.Encoder) { e.Int(o.Address.Ward) })
				e.Field("street", func(e *jx.Encoder) { e.Str(o.Address.Street) })
				if o.Address.HouseNo != "" {
					e.Field("houseNo", func(e *jx.Encoder) { e.Str(o.Address.HouseNo) })
				}
				e.Field("nearbyPlace", func(e *jx.Encoder) { e.Str(o.Address.NearbyPlace) })
			})
		})
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range o.Items {
					h.encLineItem(e, &o.Items[i])
				}
			})
		})
		e.Field("deliveryTier", func(e *jx.Encoder) { e.Str(string(o.Tier)) })
		e.Field("deliveryFee", func(e *jx.Encoder) { encDecimal(e, o.DeliveryFee) })
		e.Field("subtotal", func(e *jx.Encoder) { encDecimal(e, o.Subtotal) })
		e.Field("discount", func(e *jx.Encoder) { encDecimal(e, o.Discount) })
		if o.CouponCode != "" {
			e.Field("couponCode", func(e *jx.Encoder) { e.Str(o.CouponCode) })
		}
		e.Field("total", func(e *jx.Encoder) { encDecimal(e, o.Total) })
		e.Field("paymentMethod", func(e *jx.Encoder) { e.Str(string(o.PaymentMethod)) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("createdAt", func(e *jx.Encoder) { e.Str(o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")) })
	})
}
