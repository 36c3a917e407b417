package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/suudhaa/grocer-api/internal/domain/catalog"
)

// ListProducts returns the catalog, optionally filtered by category.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []catalog.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.products.ListByCategory(r.Context(), category)
	} else {
		products, err = h.products.List(r.Context())
	}
	if err != nil {
		writeInternalError(w, r, errors.Wrap(err, "list products"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for i := range products {
				h.encProduct(e, &products[i])
			}
		})
	})
}

// GetProduct returns a single product by ID.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeInternalError(w, r, errors.Wrap(err, "get product"))
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encProduct(e, p)
	})
}

// encProduct encodes a product response. Image paths are prefixed with the
// configured image base URL.
func (h *Handler) encProduct(e *jx.Encoder, p *catalog.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		if p.NameNepali != "" {
			e.Field("nameNepali", func(e *jx.Encoder) { e.Str(p.NameNepali) })
		}
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("price", func(e *jx.Encoder) { encDecimal(e, p.Price) })
		if !p.OriginalPrice.IsZero() {
			e.Field("originalPrice", func(e *jx.Encoder) { encDecimal(e, p.OriginalPrice) })
		}
		e.Field("unit", func(e *jx.Encoder) { e.Str(p.Unit) })
		e.Field("variations", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range p.Variations {
					e.Str(v)
				}
			})
		})
		e.Field("image", func(e *jx.Encoder) { e.Str(h.imageBaseURL + p.Image) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock) })
		e.Field("featured", func(e *jx.Encoder) { e.Bool(p.Featured) })
	})
}
