package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickcart/internal/adapters/in/http/middleware"
	"quickcart/internal/adapters/out/localstate"
	"quickcart/internal/application/usecase"
	"quickcart/internal/domain/product"
	"quickcart/internal/domain/record"
	"quickcart/internal/domain/record/recordtest"
)

type fixture struct {
	store    *recordtest.Store
	catalog  *usecase.CatalogUsecase
	cart     *usecase.CartUsecase
	wishlist *usecase.WishlistUsecase
	orders   *usecase.OrderUsecase
	ids      []int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := recordtest.New()
	ids := s.Seed(product.Table,
		record.Record{"name_c": "Walnut Desk", "category_c": "Furniture", "price_c": 449.0, "rating_c": 4.8, "reviews_c": 120, "stock_c": 3},
		record.Record{"name_c": "Brass Lamp", "category_c": "Lighting", "price_c": 59.0, "rating_c": 4.9, "reviews_c": 300, "stock_c": 8},
	)
	catalog := usecase.NewCatalogUsecase(s)
	cart := usecase.NewCartUsecase(catalog, localstate.NewSlot(filepath.Join(t.TempDir(), "cart.json")))
	return &fixture{
		store:    s,
		catalog:  catalog,
		cart:     cart,
		wishlist: usecase.NewWishlistUsecase(s, catalog, nil),
		orders:   usecase.NewOrderUsecase(s, nil),
		ids:      ids,
	}
}

func do(t *testing.T, h http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if authed {
		r = r.WithContext(middleware.WithAccount(r.Context(), "acc-1", "buyer@example.com"))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v))
}

func TestProductHandlerList(t *testing.T) {
	f := newFixture(t)
	h := NewProductHandler(f.catalog)

	w := do(t, h, http.MethodGet, "/products", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var got []product.Product
	decodeInto(t, w, &got)
	assert.Len(t, got, 2)
}

func TestProductHandlerSearchAndCategory(t *testing.T) {
	f := newFixture(t)
	h := NewProductHandler(f.catalog)

	w := do(t, h, http.MethodGet, "/products?q=lamp", "", false)
	var got []product.Product
	decodeInto(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Brass Lamp", got[0].Name)

	w = do(t, h, http.MethodGet, "/products?category=Furniture", "", false)
	got = nil
	decodeInto(t, w, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Walnut Desk", got[0].Name)
}

func TestProductHandlerGetByID(t *testing.T) {
	f := newFixture(t)
	h := NewProductHandler(f.catalog)

	w := do(t, h, http.MethodGet, "/products/1", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/products/999", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/products/abc", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/products", "", false)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCartHandlerFlow(t *testing.T) {
	f := newFixture(t)
	h := NewCartHandler(f.cart, f.catalog)

	w := do(t, h, http.MethodPost, "/cart/items", `{"productId":1,"quantity":2}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	var sum cartSummary
	decodeInto(t, w, &sum)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, "898.00", sum.Total)

	w = do(t, h, http.MethodPut, "/cart/items", `{"productId":"1","quantity":1}`, false)
	decodeInto(t, w, &sum)
	assert.Equal(t, 1, sum.Count)

	w = do(t, h, http.MethodDelete, "/cart/items/1", "", false)
	decodeInto(t, w, &sum)
	assert.Empty(t, sum.Items)
}

func TestCartHandlerAddUnknownProduct(t *testing.T) {
	f := newFixture(t)
	h := NewCartHandler(f.cart, f.catalog)

	w := do(t, h, http.MethodPost, "/cart/items", `{"productId":999,"quantity":1}`, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistHandlerRequiresAuth(t *testing.T) {
	f := newFixture(t)
	h := NewWishlistHandler(f.wishlist)

	w := do(t, h, http.MethodGet, "/wishlist", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWishlistHandlerFlow(t *testing.T) {
	f := newFixture(t)
	h := NewWishlistHandler(f.wishlist)

	w := do(t, h, http.MethodPost, "/wishlist/items", `{"productId":1}`, true)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/wishlist/items", `{"productId":1}`, true)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, h, http.MethodGet, "/wishlist/contains/1", "", true)
	var contains map[string]bool
	decodeInto(t, w, &contains)
	assert.True(t, contains["contains"])

	w = do(t, h, http.MethodDelete, "/wishlist/items/1", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodDelete, "/wishlist/items/1", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandlerCheckout(t *testing.T) {
	f := newFixture(t)
	cartH := NewCartHandler(f.cart, f.catalog)
	orderH := NewOrderHandler(f.orders, f.cart)

	// empty cart cannot check out
	w := do(t, orderH, http.MethodPost, "/orders", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	do(t, cartH, http.MethodPost, "/cart/items", `{"productId":2,"quantity":1}`, false)

	w = do(t, orderH, http.MethodPost, "/orders", "", true)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Number string `json:"orderNumber"`
		Status string `json:"status"`
	}
	decodeInto(t, w, &created)
	assert.True(t, strings.HasPrefix(created.Number, "QC"))
	assert.Equal(t, "confirmed", created.Status)

	// checkout clears the cart
	assert.Equal(t, 0, f.cart.ItemCount())

	w = do(t, orderH, http.MethodGet, "/orders", "", true)
	var orders []json.RawMessage
	decodeInto(t, w, &orders)
	assert.Len(t, orders, 1)
}

func TestHandlerMapsAuthRequiredTo401(t *testing.T) {
	f := newFixture(t)
	f.store.CreateErr = record.E(record.KindAuthRequired, "create wishlist_items_c", "policy rejected")
	h := NewWishlistHandler(f.wishlist)

	w := do(t, h, http.MethodPost, "/wishlist/items", `{"productId":1}`, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandlerMapsRemoteFailureTo502(t *testing.T) {
	f := newFixture(t)
	f.store.CreateErr = record.E(record.KindRemoteFailure, "create wishlist_items_c", "backend down")
	h := NewWishlistHandler(f.wishlist)

	w := do(t, h, http.MethodPost, "/wishlist/items", `{"productId":1}`, true)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandlerMapsNotInitializedTo503(t *testing.T) {
	f := newFixture(t)
	cartH := NewCartHandler(f.cart, f.catalog)
	do(t, cartH, http.MethodPost, "/cart/items", `{"productId":1,"quantity":1}`, false)

	// an orders usecase without a wired store signals not-initialized
	orderH := NewOrderHandler(usecase.NewOrderUsecase(nil, nil), f.cart)
	w := do(t, orderH, http.MethodPost, "/orders", "", true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// the cart survives the failed checkout
	assert.Equal(t, 1, f.cart.ItemCount())
}

func TestOrderHandlerRequiresAuth(t *testing.T) {
	f := newFixture(t)
	h := NewOrderHandler(f.orders, f.cart)

	w := do(t, h, http.MethodGet, "/orders", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
