package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suudhaa/grocer-api/internal/domain/auth"
	"github.com/suudhaa/grocer-api/internal/domain/cart"
	"github.com/suudhaa/grocer-api/internal/domain/catalog"
	"github.com/suudhaa/grocer-api/internal/domain/coupon"
	"github.com/suudhaa/grocer-api/internal/domain/order"
	"github.com/suudhaa/grocer-api/internal/repository"
)

// --- Fakes ---

type fakeProducts struct {
	byID map[string]*catalog.Product
}

func (f *fakeProducts) List(_ context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.byID {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProducts) ListByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	all, _ := f.List(ctx)
	var out []catalog.Product
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Create(_ context.Context, p *catalog.Product) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Update(_ context.Context, p *catalog.Product) error {
	if _, ok := f.byID[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCouponRepo struct {
	rules map[string]*coupon.Rule
}

func (f *fakeCouponRepo) FindByCode(_ context.Context, code string) (*coupon.Rule, error) {
	rule, ok := f.rules[strings.ToUpper(code)]
	if !ok {
		return nil, coupon.ErrUnknownCode
	}
	return rule, nil
}

type fakeSnapshots struct {
	data map[string][]byte
}

func (f *fakeSnapshots) Get(_ context.Context, key string) ([]byte, error) { return f.data[key], nil }

func (f *fakeSnapshots) Set(_ context.Context, key string, data []byte) error {
	f.data[key] = data
	return nil
}

type fakeOrders struct {
	orders map[string]*order.Order
}

func (f *fakeOrders) Create(_ context.Context, o *order.Order) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) ListByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) List(_ context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, status order.Status) error {
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type fakeUsers struct {
	byPhone map[string]*auth.User
}

func (f *fakeUsers) Create(_ context.Context, u *auth.User) error {
	if _, ok := f.byPhone[u.Phone]; ok {
		return auth.ErrPhoneTaken
	}
	cp := *u
	f.byPhone[u.Phone] = &cp
	return nil
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*auth.User, error) {
	u, ok := f.byPhone[phone]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*auth.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]auth.User, error) {
	var out []auth.User
	for _, u := range f.byPhone {
		out = append(out, *u)
	}
	return out, nil
}

type fakeAPIKeys struct {
	keyHash string
}

func (f *fakeAPIKeys) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	if hash != f.keyHash {
		return nil, errors.New("api key not found")
	}
	return &auth.APIKeyInfo{ID: "default", KeyHash: f.keyHash, Name: "test", Scopes: []string{"admin"}}, nil
}

// --- Test environment ---

const (
	testAdminKey = "test-admin-key"
	testPepper   = "test-pepper"
)

type env struct {
	mux      *http.ServeMux
	orders   *fakeOrders
	products *fakeProducts
	token    string
	userID   string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	products := &fakeProducts{byID: map[string]*catalog.Product{
		"veg-tomato": {
			ID: "veg-tomato", Name: "Tomato", NameNepali: "गोलभेडा", Category: "vegetables",
			Price: decimal.NewFromInt(80), Unit: "kg", Variations: []string{"1 kg", "2 kg"},
			Image: "products/tomato.jpg", Stock: 100,
		},
		"fruit-apple": {
			ID: "fruit-apple", Name: "Apple", Category: "fruits",
			Price: decimal.NewFromInt(250), Unit: "kg", Stock: 50,
		},
		"grain-rice-basmati": {
			ID: "grain-rice-basmati", Name: "Basmati Rice", Category: "grains",
			Price: decimal.NewFromInt(220), Unit: "kg", Stock: 200,
		},
	}}

	coupons := &fakeCouponRepo{rules: map[string]*coupon.Rule{
		"FIRST10": {Code: "FIRST10", Percentage: decimal.NewFromInt(10), Active: true},
		"SAVE50":  {Code: "SAVE50", Percentage: decimal.NewFromInt(5), MinOrder: decimal.NewFromInt(500), Active: true},
	}}

	orders := &fakeOrders{orders: make(map[string]*order.Order)}
	users := &fakeUsers{byPhone: make(map[string]*auth.User)}

	carts := cart.NewStore(&fakeSnapshots{data: make(map[string][]byte)}, coupon.NewRepoValidator(coupons))
	orderSvc := order.NewService(carts, orders)
	authSvc := auth.NewService(users, []byte("test-jwt-secret"))

	mac := hmac.New(sha256.New, []byte(testPepper))
	mac.Write([]byte(testAdminKey))
	keys := &fakeAPIKeys{keyHash: hex.EncodeToString(mac.Sum(nil))}

	h := NewHandler(
		Config{ImageBaseURL: "https://cdn.example.com/"},
		products, carts, orderSvc, orders, users, authSvc, keys, []byte(testPepper),
	)

	ctx := context.Background()
	u, err := authSvc.SignUp(ctx, auth.SignUpForm{
		Name: "Sita Sharma", Phone: "9821072912", Password: "sekret1",
	})
	require.NoError(t, err)
	sess, err := authSvc.SignIn(ctx, "9821072912", "sekret1")
	require.NoError(t, err)

	return &env{mux: h.Routes(), orders: orders, products: products, token: sess.Token, userID: u.ID}
}

func (e *env) do(t *testing.T, method, path, body string, decorate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for _, fn := range decorate {
		fn(r)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, r)
	return w
}

func (e *env) asCustomer(r *http.Request) { r.Header.Set("Authorization", "Bearer "+e.token) }

func asAdmin(r *http.Request) { r.Header.Set("api_key", testAdminKey) }

func decodeObj(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- Catalog ---

func TestListProducts(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/products?category=fruits", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "fruit-apple", list[0]["id"])
}

func TestGetProduct(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/products/veg-tomato", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeObj(t, w)
	assert.Equal(t, "Tomato", body["name"])
	assert.Equal(t, "गोलभेडा", body["nameNepali"])
	assert.Equal(t, "https://cdn.example.com/products/tomato.jpg", body["image"])
}

func TestGetProduct_NotFound(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/products/no-such", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Auth boundary ---

func TestCart_RequiresSession(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodGet, "/api/cart", "", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer bogus-token")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdmin_RequiresAPIKey(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/admin/orders", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodGet, "/api/admin/orders", "", func(r *http.Request) {
		r.Header.Set("api_key", "wrong-key")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// --- Cart ---

func TestCartFlow(t *testing.T) {
	e := newEnv(t)

	// Add two tomatoes and one apple.
	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato","variation":"1 kg"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato","variation":"1 kg"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"fruit-apple"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeObj(t, w)
	assert.Equal(t, float64(2), body["itemCount"])
	assert.Equal(t, float64(410), body["subtotal"])
	assert.Equal(t, float64(49), body["deliveryFee"])
	assert.Equal(t, float64(459), body["total"])
	assert.Equal(t, "Rs. 459.00", body["formattedTotal"])
	assert.Equal(t, float64(89), body["amountForFreeDelivery"])

	// Update quantity, then remove the line item.
	w = e.do(t, http.MethodPatch, "/api/cart/items", `{"productId":"veg-tomato","variation":"1 kg","quantity":5}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeObj(t, w)
	assert.Equal(t, float64(650), body["subtotal"])
	assert.Equal(t, float64(0), body["deliveryFee"])

	w = e.do(t, http.MethodDelete, "/api/cart/items?productId=veg-tomato&variation=1+kg", "", e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeObj(t, w)
	assert.Equal(t, float64(1), body["itemCount"])
}

func TestAddCartItem_UnknownProduct(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"no-such"}`, e.asCustomer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSelectDelivery(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPut, "/api/cart/delivery", `{"tier":"emergency"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeObj(t, w)
	assert.Equal(t, "emergency", body["deliveryTier"])
	assert.Equal(t, float64(149), body["deliveryFee"])

	w = e.do(t, http.MethodPut, "/api/cart/delivery", `{"tier":"overnight"}`, e.asCustomer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyCoupon(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"grain-rice-basmati"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPost, "/api/cart/coupon", `{"code":"FIRST10"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeObj(t, w)
	require.Contains(t, body, "coupon")
	assert.Equal(t, float64(22), body["discount"])

	// Below SAVE50's minimum: 422 and FIRST10 stays applied.
	w = e.do(t, http.MethodPost, "/api/cart/coupon", `{"code":"SAVE50"}`, e.asCustomer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = e.do(t, http.MethodGet, "/api/cart", "", e.asCustomer)
	body = decodeObj(t, w)
	cpn, ok := body["coupon"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FIRST10", cpn["code"])

	// Unknown code: 422.
	w = e.do(t, http.MethodPost, "/api/cart/coupon", `{"code":"NOSUCH"}`, e.asCustomer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Remove.
	w = e.do(t, http.MethodDelete, "/api/cart/coupon", "", e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeObj(t, w)
	assert.NotContains(t, body, "coupon")
}

// --- Checkout ---

const checkoutBody = `{
	"fullName": "Sita Sharma",
	"phone": "9821072912",
	"address": {"area": "Baneshwor", "ward": 7, "street": "Shanti Marga", "houseNo": "12", "nearbyPlace": "Everest Bank"},
	"paymentMethod": "cod"
}`

func TestPlaceOrder(t *testing.T) {
	e := newEnv(t)

	for range 2 {
		w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"grain-rice-basmati"}`, e.asCustomer)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPost, "/api/orders", checkoutBody, e.asCustomer)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeObj(t, w)
	assert.Regexp(t, `^\d{8}_07_12_\d{3}$`, body["orderId"])
	assert.Equal(t, "Order Placed", body["status"])
	// Subtotal 520 clears free delivery.
	assert.Equal(t, float64(520), body["subtotal"])
	assert.Equal(t, float64(0), body["deliveryFee"])
	assert.Equal(t, float64(520), body["total"])

	// Cart is cleared after placement.
	w = e.do(t, http.MethodGet, "/api/cart", "", e.asCustomer)
	cartBody := decodeObj(t, w)
	assert.Equal(t, float64(0), cartBody["itemCount"])
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/orders", checkoutBody, e.asCustomer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrder_ValidationErrors(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	bad := `{"fullName":"","phone":"123","address":{"area":"","ward":0,"street":"","nearbyPlace":""},"paymentMethod":"esewa"}`
	w = e.do(t, http.MethodPost, "/api/orders", bad, e.asCustomer)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeObj(t, w)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	for _, f := range []string{"fullName", "phone", "address.area", "address.ward", "address.street", "address.nearbyPlace", "paymentMethod"} {
		assert.Contains(t, fields, f)
	}

	// Nothing was created and the cart survives.
	assert.Empty(t, e.orders.orders)
	w = e.do(t, http.MethodGet, "/api/cart", "", e.asCustomer)
	cartBody := decodeObj(t, w)
	assert.Equal(t, float64(1), cartBody["itemCount"])
}

func TestGetMyOrder_OwnershipEnforced(t *testing.T) {
	e := newEnv(t)

	// An order that belongs to someone else reads as absent.
	e.orders.orders["foreign"] = &order.Order{ID: "foreign", CustomerID: "someone-else"}

	w := e.do(t, http.MethodGet, "/api/orders/foreign", "", e.asCustomer)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyOrders(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/orders", checkoutBody, e.asCustomer)
	require.Equal(t, http.StatusCreated, w.Code)

	e.orders.orders["foreign"] = &order.Order{ID: "foreign", CustomerID: "someone-else"}

	w = e.do(t, http.MethodGet, "/api/orders", "", e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

// --- Admin ---

func placeTestOrder(t *testing.T, e *env) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/cart/items", `{"productId":"veg-tomato"}`, e.asCustomer)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPost, "/api/orders", checkoutBody, e.asCustomer)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeObj(t, w)["id"].(string)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	e := newEnv(t)
	id := placeTestOrder(t, e)

	w := e.do(t, http.MethodPatch, "/api/admin/orders/"+id+"/status", `{"status":"Confirmed"}`, asAdmin)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Skipping ahead conflicts.
	w = e.do(t, http.MethodPatch, "/api/admin/orders/"+id+"/status", `{"status":"Delivered"}`, asAdmin)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Outside the vocabulary: 400.
	w = e.do(t, http.MethodPatch, "/api/admin/orders/"+id+"/status", `{"status":"Shipped"}`, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown order: 404.
	w = e.do(t, http.MethodPatch, "/api/admin/orders/no-such/status", `{"status":"Confirmed"}`, asAdmin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListOrders(t *testing.T) {
	e := newEnv(t)
	placeTestOrder(t, e)

	w := e.do(t, http.MethodGet, "/api/admin/orders", "", asAdmin)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestAdminProductCRUD(t *testing.T) {
	e := newEnv(t)

	// Create.
	w := e.do(t, http.MethodPost, "/api/admin/products",
		`{"id":"dairy-ghee","name":"Ghee","category":"dairy","price":850,"unit":"500 g"}`, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code)

	// Missing required fields: 400.
	w = e.do(t, http.MethodPost, "/api/admin/products", `{"id":"x","price":0}`, asAdmin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Update.
	w = e.do(t, http.MethodPut, "/api/admin/products/dairy-ghee",
		`{"name":"Pure Ghee","category":"dairy","price":900,"unit":"500 g"}`, asAdmin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pure Ghee", e.products.byID["dairy-ghee"].Name)

	// Delete, then the product is gone from the public catalog.
	w = e.do(t, http.MethodDelete, "/api/admin/products/dairy-ghee", "", asAdmin)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodGet, "/api/products/dairy-ghee", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodDelete, "/api/admin/products/dairy-ghee", "", asAdmin)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListCustomers_NoCredentialData(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/admin/customers", "", asAdmin)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Sita Sharma", list[0]["name"])
	assert.NotContains(t, list[0], "passwordHash")
	assert.NotContains(t, list[0], "password")
}

// --- Identity ---

func TestSignUpAndLogin(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Ram Thapa","phone":"9847012345","password":"hunter22"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeObj(t, w)
	assert.Equal(t, "customer", body["role"])
	assert.NotEmpty(t, body["userId"])

	// Duplicate phone: 409.
	w = e.do(t, http.MethodPost, "/api/auth/signup",
		`{"name":"Ram Thapa","phone":"9847012345","password":"hunter22"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bad form: 400 with fields.
	w = e.do(t, http.MethodPost, "/api/auth/signup",
		`{"name":"R","phone":"12345","password":"x"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body = decodeObj(t, w)
	assert.Contains(t, body, "fields")

	// Login.
	w = e.do(t, http.MethodPost, "/api/auth/login", `{"phone":"9847012345","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeObj(t, w)
	assert.NotEmpty(t, body["token"])

	w = e.do(t, http.MethodPost, "/api/auth/login", `{"phone":"9847012345","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
