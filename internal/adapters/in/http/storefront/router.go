// internal/adapters/in/http/storefront/router.go
package storefront

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set.
type Deps struct {
	Session  http.Handler
	Cart     http.Handler
	Wishlist http.Handler
}

// handleSafe registers pattern with h. A nil handler logs and registers
// NotFoundHandler instead so a partial container cannot crash the server.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[storefront.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// session lifecycle
	handleSafe(mux, "/api/session", deps.Session, "Session")
	handleSafe(mux, "/api/session/", deps.Session, "Session")

	// cart
	handleSafe(mux, "/api/cart", deps.Cart, "Cart")
	handleSafe(mux, "/api/cart/", deps.Cart, "Cart")

	// wishlist
	handleSafe(mux, "/api/wishlist", deps.Wishlist, "Wishlist")
	handleSafe(mux, "/api/wishlist/", deps.Wishlist, "Wishlist")
}
