package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/suudhaa/grocer-api/internal/domain/cart"
	"github.com/suudhaa/grocer-api/internal/domain/catalog"
	"github.com/suudhaa/grocer-api/internal/domain/coupon"
	"github.com/suudhaa/grocer-api/internal/domain/delivery"
	"github.com/suudhaa/grocer-api/internal/domain/money"
)

// GetCart returns the session's current cart with derived totals.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), sessionFrom(r.Context()).Subject)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "get cart"))
		return
	}
	h.writeCart(w, c)
}

// cartItemReq is the body of cart item mutations.
type cartItemReq struct {
	ProductID string
	Variation string
	Quantity  int
}

func decodeCartItemReq(data []byte) (cartItemReq, error) {
	var req cartItemReq
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			req.ProductID, err = d.Str()
		case "variation":
			req.Variation, err = d.Str()
		case "quantity":
			req.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return req, err
}

// AddCartItem adds one unit of a product+variation to the cart. The line
// item's name, price, and image are copied from the catalog at add time.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	req, err := decodeCartItemReq(body)
	if err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId required")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusUnprocessableEntity, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}

	c, err := h.carts.AddItem(r.Context(), sessionFrom(r.Context()).Subject, cart.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Variation: req.Variation,
		Image:     p.Image,
	})
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "add cart item"))
		return
	}
	h.writeCart(w, c)
}

// UpdateCartItem sets a line item's quantity; zero or below removes it.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	req, err := decodeCartItemReq(body)
	if err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId required")
		return
	}

	c, err := h.carts.UpdateQuantity(r.Context(), sessionFrom(r.Context()).Subject,
		req.ProductID, req.Variation, req.Quantity)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "update cart item"))
		return
	}
	h.writeCart(w, c)
}

// RemoveCartItem deletes a line item. Removing an absent item succeeds.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "productId required")
		return
	}

	c, err := h.carts.RemoveItem(r.Context(), sessionFrom(r.Context()).Subject,
		productID, r.URL.Query().Get("variation"))
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "remove cart item"))
		return
	}
	h.writeCart(w, c)
}

// SelectDelivery switches the cart's delivery tier.
func (h *Handler) SelectDelivery(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	var tierName string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		if key == "tier" {
			tierName, err = d.Str()
			return err
		}
		return d.Skip()
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tier, err := delivery.ParseTier(tierName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown delivery tier")
		return
	}

	c, err := h.carts.SelectTier(r.Context(), sessionFrom(r.Context()).Subject, tier)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "select delivery tier"))
		return
	}
	h.writeCart(w, c)
}

// ApplyCoupon validates and applies a coupon code. Policy rejections map to
// 422 and leave any previously applied coupon untouched.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	var code string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		if key == "code" {
			code, err = d.Str()
			return err
		}
		return d.Skip()
	}); err != nil || code == "" {
		writeError(w, http.StatusBadRequest, "coupon code required")
		return
	}

	c, err := h.carts.ApplyCoupon(r.Context(), sessionFrom(r.Context()).Subject, code)
	if err != nil {
		var minErr *coupon.MinimumNotMetError
		switch {
		case errors.Is(err, coupon.ErrUnknownCode):
			writeError(w, http.StatusUnprocessableEntity, "invalid coupon code")
		case errors.As(err, &minErr):
			writeError(w, http.StatusUnprocessableEntity, minErr.Error())
		default:
			writeInternalError(w, r, errors.Wrap(err, "apply coupon"))
		}
		return
	}
	h.writeCart(w, c)
}

// RemoveCoupon detaches any applied coupon.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.RemoveCoupon(r.Context(), sessionFrom(r.Context()).Subject)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "remove coupon"))
		return
	}
	h.writeCart(w, c)
}

// ClearCart empties the session's cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Clear(r.Context(), sessionFrom(r.Context()).Subject)
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "clear cart"))
		return
	}
	h.writeCart(w, c)
}

// writeCart renders a cart with all derived pricing values.
func (h *Handler) writeCart(w http.ResponseWriter, c cart.Cart) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("items", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for i := range c.Items {
						h.encLineItem(e, &c.Items[i])
					}
				})
			})
			e.Field("itemCount", func(e *jx.Encoder) { e.Int(c.ItemCount()) })
			e.Field("deliveryTier", func(e *jx.Encoder) { e.Str(string(c.Tier)) })
			e.Field("subtotal", func(e *jx.Encoder) { encDecimal(e, c.Subtotal()) })
			e.Field("deliveryFee", func(e *jx.Encoder) { encDecimal(e, c.DeliveryFee()) })
			e.Field("discount", func(e *jx.Encoder) { encDecimal(e, c.Discount()) })
			e.Field("total", func(e *jx.Encoder) { encDecimal(e, c.Total()) })
			e.Field("formattedTotal", func(e *jx.Encoder) { e.Str(money.Format(c.Total())) })
			e.Field("amountForFreeDelivery", func(e *jx.Encoder) { encDecimal(e, c.AmountForFreeDelivery()) })
			if c.Coupon != nil {
				e.Field("coupon", func(e *jx.Encoder) {
					e.Obj(func(e *jx.Encoder) {
						e.Field("code", func(e *jx.Encoder) { e.Str(c.Coupon.Code) })
						e.Field("percentage", func(e *jx.Encoder) { encDecimal(e, c.Coupon.Percentage) })
						e.Field("description", func(e *jx.Encoder) { e.Str(c.Coupon.Description) })
					})
				})
			}
		})
	})
}

func (h *Handler) encLineItem(e *jx.Encoder, item *cart.LineItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
		e.Field("unitPrice", func(e *jx.Encoder) { encDecimal(e, item.UnitPrice) })
		e.Field("variation", func(e *jx.Encoder) { e.Str(item.Variation) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		e.Field("image", func(e *jx.Encoder) { e.Str(h.imageBaseURL + item.Image) })
	})
}
