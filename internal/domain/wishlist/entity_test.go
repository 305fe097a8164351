// internal/domain/wishlist/entity_test.go
package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle(t *testing.T) {
	t.Run("absent adds", func(t *testing.T) {
		got, added, err := Toggle(nil, Entry{ProductID: "A", Name: "Aloe"})
		require.NoError(t, err)
		assert.True(t, added)
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].ProductID)
	})

	t.Run("present removes", func(t *testing.T) {
		start := []Entry{{ProductID: "A"}, {ProductID: "B"}}
		got, added, err := Toggle(start, Entry{ProductID: "A"})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, []Entry{{ProductID: "B"}}, got)
	})

	t.Run("toggling twice restores the set", func(t *testing.T) {
		start := []Entry{{ProductID: "B"}}
		once, added, err := Toggle(start, Entry{ProductID: "A"})
		require.NoError(t, err)
		require.True(t, added)
		twice, added, err := Toggle(once, Entry{ProductID: "A"})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, start, twice)
	})

	t.Run("empty product id rejected", func(t *testing.T) {
		_, _, err := Toggle(nil, Entry{ProductID: "  "})
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})
}

func TestMerge(t *testing.T) {
	identity := []Entry{{ProductID: "A", Name: "old"}, {ProductID: "B"}}
	guest := []Entry{{ProductID: "A", Name: "new"}, {ProductID: "C"}}

	got := Merge(identity, guest)

	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].ProductID)
	// guest snapshot wins on collision, no duplicate entry
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, "B", got[1].ProductID)
	assert.Equal(t, "C", got[2].ProductID)
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Entry{
		{ProductID: " A "},
		{ProductID: ""},
		{ProductID: "A", Name: "later"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, "later", got[0].Name)
}

func TestContains(t *testing.T) {
	entries := []Entry{{ProductID: "A"}}
	assert.True(t, Contains(entries, "A"))
	assert.False(t, Contains(entries, "B"))
	assert.False(t, Contains(nil, "A"))
}
