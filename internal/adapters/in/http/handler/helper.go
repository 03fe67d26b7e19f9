package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quickcart/internal/application/usecase"
	"quickcart/internal/domain/record"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

// writeUsecaseErr maps kinded errors (and the wishlist sentinels) to HTTP
// status. The kind was decided at the store boundary; nothing here inspects
// message text.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAlreadyInWishlist):
		writeErr(w, http.StatusConflict, "already in wishlist")
		return
	case errors.Is(err, usecase.ErrNotInWishlist):
		writeErr(w, http.StatusNotFound, "not in wishlist")
		return
	}

	switch record.KindOf(err) {
	case record.KindInvalidInput:
		writeErr(w, http.StatusBadRequest, err.Error())
	case record.KindNotFound:
		notFound(w)
	case record.KindAuthRequired:
		writeErr(w, http.StatusUnauthorized, "authentication required")
	case record.KindNotInitialized:
		writeErr(w, http.StatusServiceUnavailable, "backend unavailable")
	default:
		writeErr(w, http.StatusBadGateway, "backend error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// subPath strips prefix and surrounding slashes: /cart/items/7 -> "items/7".
func subPath(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

func parseID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n > 0
}
