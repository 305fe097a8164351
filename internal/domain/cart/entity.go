// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"

	"greencart/internal/domain/collection"
)

var (
	ErrInvalidLine = errors.New("cart: invalid line")
)

// Line is one cart line item: a product snapshot plus a quantity.
// Within one collection ProductID is unique; adding a product that is
// already present sums quantities instead of appending a duplicate.
type Line struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
	FinalPrice float64 `json:"finalPrice,omitempty"`
	ImageURL   string  `json:"imageUrl,omitempty"`
	Category   string  `json:"category,omitempty"`
	Quantity   int     `json:"quantity"`
}

func keyOf(l Line) string { return l.ProductID }

// combine sums quantities; snapshot fields follow the most recently seen
// line (the incoming one).
func combine(existing, incoming Line) Line {
	merged := incoming
	merged.Quantity = existing.Quantity + incoming.Quantity
	return merged
}

// Normalize drops invalid lines and folds duplicate product ids together,
// preserving first-seen order. Persisted payloads pass through here on
// load, so a corrupt or hand-edited store entry cannot reintroduce
// duplicate lines or zero quantities.
func Normalize(lines []Line) []Line {
	valid := make([]Line, 0, len(lines))
	for _, l := range lines {
		l.ProductID = strings.TrimSpace(l.ProductID)
		if l.ProductID == "" || l.Quantity <= 0 {
			continue
		}
		valid = append(valid, l)
	}
	return collection.MergeByKey(valid, nil, keyOf, combine)
}

// Merge folds a guest collection into an identity collection. Identity
// lines keep their positions, guest lines append, and colliding product
// ids sum quantities with the guest snapshot fields winning.
func Merge(identityLines, guestLines []Line) []Line {
	return collection.MergeByKey(Normalize(identityLines), Normalize(guestLines), keyOf, combine)
}

// Add merges l into lines by product id, summing quantity.
func Add(lines []Line, l Line) ([]Line, error) {
	l.ProductID = strings.TrimSpace(l.ProductID)
	if l.ProductID == "" || l.Quantity <= 0 {
		return nil, ErrInvalidLine
	}
	return collection.MergeByKey(lines, []Line{l}, keyOf, combine), nil
}

// SetQuantity overwrites the committed quantity for productID.
// qty <= 0 removes the line. A product id not present in the collection is
// left untouched (there is no snapshot to fabricate a new line from).
func SetQuantity(lines []Line, productID string, qty int) []Line {
	pid := strings.TrimSpace(productID)
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != pid {
			out = append(out, l)
			continue
		}
		if qty <= 0 {
			continue
		}
		l.Quantity = qty
		out = append(out, l)
	}
	return out
}

// Remove deletes productID from lines. Idempotent.
func Remove(lines []Line, productID string) []Line {
	return SetQuantity(lines, productID, 0)
}

// Quantity returns the committed quantity for productID (0 when absent).
func Quantity(lines []Line, productID string) int {
	pid := strings.TrimSpace(productID)
	for _, l := range lines {
		if l.ProductID == pid {
			return l.Quantity
		}
	}
	return 0
}

// Subtotal is the checkout summary basis: sum of finalPrice times quantity.
func Subtotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.FinalPrice * float64(l.Quantity)
	}
	return total
}

// Clone returns a defensive copy of lines.
func Clone(lines []Line) []Line {
	if len(lines) == 0 {
		return []Line{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
