package handler

import (
	"net/http"
	"strings"

	"quickcart/internal/application/usecase"
)

// ProductHandler serves the read-only catalog endpoints:
// - GET /products                  (?q= search, ?category= filter)
// - GET /products/featured
// - GET /products/categories
// - GET /products/{id}
// - GET /products/{id}/related     (?limit=)
type ProductHandler struct {
	catalog *usecase.CatalogUsecase
}

func NewProductHandler(catalog *usecase.CatalogUsecase) http.Handler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeErr(w, http.StatusServiceUnavailable, "catalog is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	path := subPath(r, "/products")
	switch path {
	case "":
		h.handleList(w, r)
		return
	case "featured":
		writeJSON(w, http.StatusOK, h.catalog.GetFeatured(r.Context()))
		return
	case "categories":
		writeJSON(w, http.StatusOK, h.catalog.GetCategories(r.Context()))
		return
	}

	// /products/{id} or /products/{id}/related
	head, rest, _ := strings.Cut(path, "/")
	id, ok := parseID(head)
	if !ok {
		notFound(w)
		return
	}

	switch rest {
	case "":
		p, err := h.catalog.GetByID(r.Context(), id)
		if err != nil {
			writeUsecaseErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case "related":
		limit := 0
		if n, ok := parseID(r.URL.Query().Get("limit")); ok {
			limit = n
		}
		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category == "" {
			if p, err := h.catalog.GetByID(r.Context(), id); err == nil {
				category = p.Category
			}
		}
		writeJSON(w, http.StatusOK, h.catalog.GetRelated(r.Context(), id, category, limit))
	default:
		notFound(w)
	}
}

func (h *ProductHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	switch {
	case q != "":
		writeJSON(w, http.StatusOK, h.catalog.Search(r.Context(), q))
	case category != "":
		writeJSON(w, http.StatusOK, h.catalog.GetByCategory(r.Context(), category))
	default:
		writeJSON(w, http.StatusOK, h.catalog.GetAll(r.Context()))
	}
}
