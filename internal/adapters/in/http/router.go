package httpin

import (
	"net/http"

	"quickcart/internal/adapters/in/http/handler"
	"quickcart/internal/adapters/in/http/middleware"
	"quickcart/internal/application/usecase"
)

// RouterDeps carries the wired usecases into the HTTP surface.
type RouterDeps struct {
	Catalog  *usecase.CatalogUsecase
	Cart     *usecase.CartUsecase
	Wishlist *usecase.WishlistUsecase
	Orders   *usecase.OrderUsecase

	// FirebaseAuth guards the wishlist and order routes. When nil those
	// routes respond 503 instead of panicking at mount time.
	FirebaseAuth *middleware.FirebaseAuthClient
}

// NewRouter mounts the public surface. Catalog and cart are open; wishlist and
// orders require a verified Firebase ID token.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/products", handler.NewProductHandler(deps.Catalog))
	mux.Handle("/products/", handler.NewProductHandler(deps.Catalog))

	mux.Handle("/cart", handler.NewCartHandler(deps.Cart, deps.Catalog))
	mux.Handle("/cart/", handler.NewCartHandler(deps.Cart, deps.Catalog))

	auth := &middleware.Auth{FirebaseAuth: deps.FirebaseAuth}

	wishlist := auth.Handler(handler.NewWishlistHandler(deps.Wishlist))
	mux.Handle("/wishlist", wishlist)
	mux.Handle("/wishlist/", wishlist)

	orders := auth.Handler(handler.NewOrderHandler(deps.Orders, deps.Cart))
	mux.Handle("/orders", orders)
	mux.Handle("/orders/", orders)

	return middleware.RequestID(middleware.Recover(mux))
}
