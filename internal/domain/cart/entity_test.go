// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, qty int) Line {
	return Line{ProductID: id, Quantity: qty}
}

func TestMerge(t *testing.T) {
	t.Run("identity first, guest appends, collisions sum", func(t *testing.T) {
		identity := []Line{{ProductID: "B", Quantity: 1}, {ProductID: "A", Quantity: 2}}
		guest := []Line{{ProductID: "A", Quantity: 3, Name: "Aloe"}, {ProductID: "C", Quantity: 1}}

		got := Merge(identity, guest)

		require.Len(t, got, 3)
		assert.Equal(t, "B", got[0].ProductID)
		assert.Equal(t, "A", got[1].ProductID)
		assert.Equal(t, 5, got[1].Quantity)
		// guest snapshot wins on collision
		assert.Equal(t, "Aloe", got[1].Name)
		assert.Equal(t, "C", got[2].ProductID)
	})

	t.Run("empty guest leaves identity untouched", func(t *testing.T) {
		identity := []Line{line("A", 2)}
		got := Merge(identity, nil)
		assert.Equal(t, identity, got)
	})

	t.Run("empty identity takes guest as is", func(t *testing.T) {
		guest := []Line{line("A", 2), line("B", 1)}
		got := Merge(nil, guest)
		assert.Equal(t, guest, got)
	})
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Line{
		{ProductID: "  A ", Quantity: 1},
		{ProductID: "", Quantity: 5},
		{ProductID: "B", Quantity: 0},
		{ProductID: "B", Quantity: -2},
		{ProductID: "A", Quantity: 2},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, 3, got[0].Quantity)
}

func TestAdd(t *testing.T) {
	t.Run("new product appends", func(t *testing.T) {
		got, err := Add([]Line{line("A", 1)}, line("B", 2))
		require.NoError(t, err)
		assert.Equal(t, []Line{line("A", 1), line("B", 2)}, got)
	})

	t.Run("existing product sums quantity", func(t *testing.T) {
		got, err := Add([]Line{line("A", 1)}, line("A", 2))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 3, got[0].Quantity)
	})

	t.Run("invalid line rejected", func(t *testing.T) {
		_, err := Add(nil, line("", 1))
		assert.ErrorIs(t, err, ErrInvalidLine)
		_, err = Add(nil, line("A", 0))
		assert.ErrorIs(t, err, ErrInvalidLine)
	})
}

func TestSetQuantity(t *testing.T) {
	lines := []Line{line("A", 2), line("B", 1)}

	t.Run("overwrite", func(t *testing.T) {
		got := SetQuantity(lines, "A", 5)
		assert.Equal(t, 5, Quantity(got, "A"))
		assert.Equal(t, 1, Quantity(got, "B"))
	})

	t.Run("zero removes", func(t *testing.T) {
		got := SetQuantity(lines, "A", 0)
		assert.Equal(t, []Line{line("B", 1)}, got)
	})

	t.Run("absent id untouched", func(t *testing.T) {
		got := SetQuantity(lines, "Z", 4)
		assert.Equal(t, lines, got)
	})
}

func TestRemoveIdempotent(t *testing.T) {
	lines := []Line{line("A", 2)}
	got := Remove(lines, "A")
	assert.Empty(t, got)
	got = Remove(got, "A")
	assert.Empty(t, got)
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{ProductID: "A", FinalPrice: 9.5, Quantity: 2},
		{ProductID: "B", Price: 100, FinalPrice: 80, Quantity: 1},
	}
	assert.InDelta(t, 99.0, Subtotal(lines), 1e-9)
	assert.Zero(t, Subtotal(nil))
}

func TestCloneIsDefensive(t *testing.T) {
	lines := []Line{line("A", 1)}
	cp := Clone(lines)
	cp[0].Quantity = 99
	assert.Equal(t, 1, lines[0].Quantity)
	assert.NotNil(t, Clone(nil))
}
