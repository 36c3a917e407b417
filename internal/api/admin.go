package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/suudhaa/grocer-api/internal/domain/catalog"
	"github.com/suudhaa/grocer-api/internal/domain/order"
	"github.com/suudhaa/grocer-api/internal/repository"
)

// AdminListOrders returns every order, newest first.
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.orderRepo.List(r.Context())
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list orders"))
		return
	}
	h.writeOrderList(w, list)
}

// AdminUpdateOrderStatus moves an order along the status machine.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	var statusName string
	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		if key == "status" {
			statusName, err = d.Str()
			return err
		}
		return d.Skip()
	}); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := order.ParseStatus(statusName)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order status")
		return
	}

	if err := h.orders.ChangeStatus(r.Context(), r.PathValue("id"), status); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrInvalidTransition):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeInternalError(w, r, errors.Wrap(err, "update order status"))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeProductReq(data []byte) (catalog.Product, error) {
	var p catalog.Product
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "nameNepali":
			p.NameNepali, err = d.Str()
		case "category":
			p.Category, err = d.Str()
		case "price":
			var f float64
			f, err = d.Float64()
			p.Price = decimal.NewFromFloat(f)
		case "originalPrice":
			var f float64
			f, err = d.Float64()
			p.OriginalPrice = decimal.NewFromFloat(f)
		case "unit":
			p.Unit, err = d.Str()
		case "variations":
			err = d.Arr(func(d *jx.Decoder) error {
				v, err := d.Str()
				p.Variations = append(p.Variations, v)
				return err
			})
		case "image":
			p.Image, err = d.Str()
		case "description":
			p.Description, err = d.Str()
		case "stock":
			p.Stock, err = d.Int()
		case "featured":
			p.Featured, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}

// AdminCreateProduct adds a product to the catalog.
func (h *Handler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	p, err := decodeProductReq(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.ID == "" || p.Name == "" || p.Category == "" || !p.Price.IsPositive() {
		writeError(w, http.StatusBadRequest, "id, name, category, and a positive price are required")
		return
	}

	if err := h.products.Create(r.Context(), &p); err != nil {
		writeInternalError(w, r, errors.Wrap(err, "create product"))
		return
	}

	writeJSON(w, http.StatusCreated, func(e *jx.Encoder) {
		h.encProduct(e, &p)
	})
}

// AdminUpdateProduct replaces a product's fields.
func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	p, err := decodeProductReq(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.ID = r.PathValue("id")
	if p.Name == "" || p.Category == "" || !p.Price.IsPositive() {
		writeError(w, http.StatusBadRequest, "name, category, and a positive price are required")
		return
	}

	if err := h.products.Update(r.Context(), &p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "update product"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encProduct(e, &p)
	})
}

// AdminDeleteProduct removes a product from the catalog.
func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "delete product"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminListCustomers returns registered accounts without credential data.
func (h *Handler) AdminListCustomers(w http.ResponseWriter, r *http.Request) {
	users, err := h.customers.List(r.Context())
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list customers"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range users {
				u := &users[i]
				e.Obj(func(e *jx.Encoder) {
					e.Field("userId", func(e *jx.Encoder) { e.Str(u.ID) })
					e.Field("name", func(e *jx.Encoder) { e.Str(u.Name) })
					e.Field("phone", func(e *jx.Encoder) { e.Str(u.Phone) })
					e.Field("role", func(e *jx.Encoder) { e.Str(string(u.Role)) })
					e.Field("createdAt", func(e *jx.Encoder) { e.Str(u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")) })
				})
			}
		})
	})
}
