package handler

import (
	"net/http"

	"quickcart/internal/adapters/in/http/middleware"
	"quickcart/internal/application/usecase"
)

// OrderHandler serves the per-account order history (behind auth):
// - POST /orders        (checkout: snapshot the cart, persist, clear cart)
// - GET  /orders
// - GET  /orders/{id}
type OrderHandler struct {
	orders *usecase.OrderUsecase
	cart   *usecase.CartUsecase
}

func NewOrderHandler(orders *usecase.OrderUsecase, cart *usecase.CartUsecase) http.Handler {
	return &OrderHandler{orders: orders, cart: cart}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.orders == nil {
		writeErr(w, http.StatusServiceUnavailable, "orders are not configured")
		return
	}
	accountID := middleware.AccountIDFrom(r.Context())
	if accountID == "" {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}

	path := subPath(r, "/orders")
	switch {
	case path == "" && r.Method == http.MethodPost:
		h.handleCheckout(w, r, accountID)
	case path == "" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.orders.GetAll(r.Context(), accountID))
	case r.Method == http.MethodGet:
		id, ok := parseID(path)
		if !ok {
			notFound(w)
			return
		}
		o, err := h.orders.GetByID(r.Context(), accountID, id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, o)
	default:
		methodNotAllowed(w)
	}
}

// handleCheckout turns the current cart into an order. The cart is cleared
// only after the order is committed; a failed create leaves it untouched.
func (h *OrderHandler) handleCheckout(w http.ResponseWriter, r *http.Request, accountID string) {
	if h.cart == nil {
		writeErr(w, http.StatusServiceUnavailable, "cart is not configured")
		return
	}
	items := h.cart.Snapshot()
	if len(items) == 0 {
		writeErr(w, http.StatusBadRequest, "cart is empty")
		return
	}

	o, err := h.orders.Create(r.Context(), usecase.CreateOrderRequest{
		AccountID: accountID,
		Email:     middleware.EmailFrom(r.Context()),
		Items:     items,
	})
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	h.cart.Clear()
	writeJSON(w, http.StatusCreated, o)
}
