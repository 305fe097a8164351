// internal/application/query/summary.go
package query

import (
	"greencart/internal/domain/cart"
	"greencart/internal/domain/identity"
	"greencart/internal/domain/wishlist"
)

// CartSummary is the read model for the cart badge and cart page.
type CartSummary struct {
	Identity string      `json:"identity"`
	Lines    []cart.Line `json:"lines"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
}

// BuildCartSummary assembles the summary for an effective cart.
// Count is total units, not distinct lines.
func BuildCartSummary(id identity.Identity, lines []cart.Line) CartSummary {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return CartSummary{
		Identity: id.NamespaceID(),
		Lines:    cart.Clone(lines),
		Count:    count,
		Subtotal: cart.Subtotal(lines),
	}
}

// WishlistSummary is the read model for the wishlist page.
type WishlistSummary struct {
	Identity string           `json:"identity"`
	Entries  []wishlist.Entry `json:"entries"`
	Count    int              `json:"count"`
}

func BuildWishlistSummary(id identity.Identity, entries []wishlist.Entry) WishlistSummary {
	return WishlistSummary{
		Identity: id.NamespaceID(),
		Entries:  wishlist.Clone(entries),
		Count:    len(entries),
	}
}
