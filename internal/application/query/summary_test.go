// internal/application/query/summary_test.go
package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greencart/internal/domain/cart"
	"greencart/internal/domain/identity"
	"greencart/internal/domain/wishlist"
)

func TestBuildCartSummary(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "A", FinalPrice: 4.5, Quantity: 2},
		{ProductID: "B", FinalPrice: 10, Quantity: 1},
	}

	sum := BuildCartSummary(identity.Authenticated("u-1"), lines)

	assert.Equal(t, "u-1", sum.Identity)
	// count is total units, not distinct lines
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 19.0, sum.Subtotal, 1e-9)

	// the summary holds a copy
	sum.Lines[0].Quantity = 99
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestBuildCartSummaryEmpty(t *testing.T) {
	sum := BuildCartSummary(identity.Guest(), nil)
	assert.Equal(t, "guest", sum.Identity)
	assert.Zero(t, sum.Count)
	assert.Zero(t, sum.Subtotal)
	assert.NotNil(t, sum.Lines)
}

func TestBuildWishlistSummary(t *testing.T) {
	entries := []wishlist.Entry{{ProductID: "A"}, {ProductID: "B"}}
	sum := BuildWishlistSummary(identity.Guest(), entries)
	assert.Equal(t, "guest", sum.Identity)
	assert.Equal(t, 2, sum.Count)
}
