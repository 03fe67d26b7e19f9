package handler

import (
	"net/http"

	"quickcart/internal/application/usecase"
)

// CartHandler serves the device-scoped cart:
// - GET    /cart          (reconciled lines + count + total)
// - DELETE /cart
// - GET    /cart/count
// - GET    /cart/total
// - POST   /cart/items    {"productId": 7, "quantity": 2}
// - PUT    /cart/items    {"productId": "7", "quantity": 3}
// - DELETE /cart/items/{productId}
type CartHandler struct {
	cart    *usecase.CartUsecase
	catalog *usecase.CatalogUsecase
}

func NewCartHandler(cart *usecase.CartUsecase, catalog *usecase.CatalogUsecase) http.Handler {
	return &CartHandler{cart: cart, catalog: catalog}
}

type cartSummary struct {
	Items []usecase.CartLineView `json:"items"`
	Count int                    `json:"count"`
	Total string                 `json:"total"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.cart == nil {
		writeErr(w, http.StatusServiceUnavailable, "cart is not configured")
		return
	}

	path := subPath(r, "/cart")
	isGET := r.Method == http.MethodGet
	isDEL := r.Method == http.MethodDelete

	switch {
	case path == "" && isGET:
		writeJSON(w, http.StatusOK, h.summary(r))
	case path == "" && isDEL:
		h.cart.Clear()
		writeJSON(w, http.StatusOK, h.summary(r))
	case path == "count" && isGET:
		writeJSON(w, http.StatusOK, map[string]int{"count": h.cart.ItemCount()})
	case path == "total" && isGET:
		writeJSON(w, http.StatusOK, map[string]string{"total": h.cart.Total(r.Context()).StringFixed(2)})
	case path == "items" && r.Method == http.MethodPost:
		h.handleAdd(w, r)
	case path == "items" && r.Method == http.MethodPut:
		h.handleSetQty(w, r)
	case len(path) > len("items/") && path[:len("items/")] == "items/" && isDEL:
		h.cart.RemoveItem(r.Context(), path[len("items/"):])
		writeJSON(w, http.StatusOK, h.summary(r))
	default:
		methodNotAllowed(w)
	}
}

func (h *CartHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if h.catalog == nil {
		writeErr(w, http.StatusServiceUnavailable, "catalog is not configured")
		return
	}

	p, err := h.catalog.GetByID(r.Context(), body.ProductID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	if _, err := h.cart.AddItem(r.Context(), p, body.Quantity); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.summary(r))
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	h.cart.UpdateQuantity(r.Context(), body.ProductID, body.Quantity)
	writeJSON(w, http.StatusOK, h.summary(r))
}

func (h *CartHandler) summary(r *http.Request) cartSummary {
	return cartSummary{
		Items: h.cart.GetAll(r.Context()),
		Count: h.cart.ItemCount(),
		Total: h.cart.Total(r.Context()).StringFixed(2),
	}
}
