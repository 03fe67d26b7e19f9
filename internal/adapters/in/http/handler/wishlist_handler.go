package handler

import (
	"net/http"
	"strings"

	"quickcart/internal/adapters/in/http/middleware"
	"quickcart/internal/application/usecase"
)

// WishlistHandler serves the per-account wishlist (behind auth):
// - GET    /wishlist                     (entries joined with products)
// - DELETE /wishlist
// - GET    /wishlist/count
// - GET    /wishlist/contains/{productId}
// - POST   /wishlist/items               {"productId": 7}
// - POST   /wishlist/toggle              {"productId": 7}
// - DELETE /wishlist/items/{productId}
type WishlistHandler struct {
	wishlist *usecase.WishlistUsecase
}

func NewWishlistHandler(wishlist *usecase.WishlistUsecase) http.Handler {
	return &WishlistHandler{wishlist: wishlist}
}

func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.wishlist == nil {
		writeErr(w, http.StatusServiceUnavailable, "wishlist is not configured")
		return
	}
	accountID := middleware.AccountIDFrom(r.Context())
	if accountID == "" {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}

	path := subPath(r, "/wishlist")
	isGET := r.Method == http.MethodGet
	isDEL := r.Method == http.MethodDelete

	switch {
	case path == "" && isGET:
		writeJSON(w, http.StatusOK, h.wishlist.GetWithProducts(r.Context(), accountID))
	case path == "" && isDEL:
		removed, err := h.wishlist.Clear(r.Context(), accountID)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
	case path == "count" && isGET:
		writeJSON(w, http.StatusOK, map[string]int{"count": len(h.wishlist.GetAll(r.Context(), accountID))})
	case strings.HasPrefix(path, "contains/") && isGET:
		pid, ok := parseID(strings.TrimPrefix(path, "contains/"))
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"contains": h.wishlist.IsInWishlist(r.Context(), accountID, pid)})
	case path == "items" && r.Method == http.MethodPost:
		h.handleAdd(w, r, accountID)
	case path == "toggle" && r.Method == http.MethodPost:
		h.handleToggle(w, r, accountID)
	case strings.HasPrefix(path, "items/") && isDEL:
		pid, ok := parseID(strings.TrimPrefix(path, "items/"))
		if !ok {
			notFound(w)
			return
		}
		removed, err := h.wishlist.Remove(r.Context(), accountID, pid)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
	default:
		methodNotAllowed(w)
	}
}

func (h *WishlistHandler) handleAdd(w http.ResponseWriter, r *http.Request, accountID string) {
	var body struct {
		ProductID int `json:"productId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	entry, err := h.wishlist.Add(r.Context(), accountID, body.ProductID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *WishlistHandler) handleToggle(w http.ResponseWriter, r *http.Request, accountID string) {
	var body struct {
		ProductID int `json:"productId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	added, err := h.wishlist.Toggle(r.Context(), accountID, body.ProductID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}
