// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"strings"

	"greencart/internal/domain/collection"
)

var (
	ErrInvalidEntry = errors.New("wishlist: invalid entry")
)

// Entry is one wishlist membership: a product snapshot, no quantity.
// Membership is a pure set keyed by ProductID.
type Entry struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
	FinalPrice float64 `json:"finalPrice,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Category   string  `json:"category,omitempty"`
}

func keyOf(e Entry) string { return e.ProductID }

// combine is last write wins on snapshot fields.
func combine(_, incoming Entry) Entry { return incoming }

// Normalize drops invalid entries and folds duplicate product ids,
// preserving first-seen order.
func Normalize(entries []Entry) []Entry {
	valid := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.ProductID = strings.TrimSpace(e.ProductID)
		if e.ProductID == "" {
			continue
		}
		valid = append(valid, e)
	}
	return collection.MergeByKey(valid, nil, keyOf, combine)
}

// Merge folds a guest wishlist into an identity wishlist. Dedup by product
// id; the guest snapshot wins on collision.
func Merge(identityEntries, guestEntries []Entry) []Entry {
	return collection.MergeByKey(Normalize(identityEntries), Normalize(guestEntries), keyOf, combine)
}

// Contains reports set membership for productID.
func Contains(entries []Entry, productID string) bool {
	pid := strings.TrimSpace(productID)
	for _, e := range entries {
		if e.ProductID == pid {
			return true
		}
	}
	return false
}

// Toggle adds e when absent and removes it when present. Toggling twice
// with the same product returns the original set.
func Toggle(entries []Entry, e Entry) ([]Entry, bool, error) {
	e.ProductID = strings.TrimSpace(e.ProductID)
	if e.ProductID == "" {
		return nil, false, ErrInvalidEntry
	}

	if Contains(entries, e.ProductID) {
		out := make([]Entry, 0, len(entries))
		for _, cur := range entries {
			if cur.ProductID == e.ProductID {
				continue
			}
			out = append(out, cur)
		}
		return out, false, nil
	}

	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	return out, true, nil
}

// Clone returns a defensive copy of entries.
func Clone(entries []Entry) []Entry {
	if len(entries) == 0 {
		return []Entry{}
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
