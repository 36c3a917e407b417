// Package api exposes the storefront and back-office over HTTP. Handlers
// decode with go-faster/jx, delegate to the domain services, and map domain
// errors onto the wire taxonomy.
package api

import (
	"net/http"

	"github.com/suudhaa/grocer-api/internal/domain/auth"
	"github.com/suudhaa/grocer-api/internal/domain/cart"
	"github.com/suudhaa/grocer-api/internal/domain/catalog"
	"github.com/suudhaa/grocer-api/internal/domain/order"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product
	// responses. When empty, image paths are returned as stored.
	ImageBaseURL string
}

// Handler wires the HTTP surface to the domain services.
type Handler struct {
	products     catalog.Repository
	carts        *cart.Store
	orders       *order.Service
	orderRepo    order.Repository
	customers    auth.UserRepository
	sessions     *auth.Service
	apikeys      auth.APIKeyRepository
	pepper       []byte
	imageBaseURL string
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	cfg Config,
	products catalog.Repository,
	carts *cart.Store,
	orders *order.Service,
	orderRepo order.Repository,
	customers auth.UserRepository,
	sessions *auth.Service,
	apikeys auth.APIKeyRepository,
	pepper []byte,
) *Handler {
	return &Handler{
		products:     products,
		carts:        carts,
		orders:       orders,
		orderRepo:    orderRepo,
		customers:    customers,
		sessions:     sessions,
		apikeys:      apikeys,
		pepper:       pepper,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes returns the API route table. Customer routes require a session
// token; admin routes require an API key.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Public catalog + identity.
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("POST /api/auth/signup", h.SignUp)
	mux.HandleFunc("POST /api/auth/login", h.SignIn)

	// Customer cart + checkout.
	mux.Handle("GET /api/cart", h.customer(h.GetCart))
	mux.Handle("POST /api/cart/items", h.customer(h.AddCartItem))
	mux.Handle("PATCH /api/cart/items", h.customer(h.UpdateCartItem))
	mux.Handle("DELETE /api/cart/items", h.customer(h.RemoveCartItem))
	mux.Handle("PUT /api/cart/delivery", h.customer(h.SelectDelivery))
	mux.Handle("POST /api/cart/coupon", h.customer(h.ApplyCoupon))
	mux.Handle("DELETE /api/cart/coupon", h.customer(h.RemoveCoupon))
	mux.Handle("DELETE /api/cart", h.customer(h.ClearCart))
	mux.Handle("POST /api/orders", h.customer(h.PlaceOrder))
	mux.Handle("GET /api/orders", h.customer(h.ListMyOrders))
	mux.Handle("GET /api/orders/{id}", h.customer(h.GetMyOrder))

	// Admin back-office.
	mux.Handle("GET /api/admin/orders", h.admin(h.AdminListOrders))
	mux.Handle("PATCH /api/admin/orders/{id}/status", h.admin(h.AdminUpdateOrderStatus))
	mux.Handle("POST /api/admin/products", h.admin(h.AdminCreateProduct))
	mux.Handle("PUT /api/admin/products/{id}", h.admin(h.AdminUpdateProduct))
	mux.Handle("DELETE /api/admin/products/{id}", h.admin(h.AdminDeleteProduct))
	mux.Handle("GET /api/admin/customers", h.admin(h.AdminListCustomers))

	return mux
}
