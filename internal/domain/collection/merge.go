// internal/domain/collection/merge.go
package collection

// MergeByKey folds incoming into existing. Entries whose key collides are
// combined in place; the rest are appended. Relative order is stable:
// existing entries keep their original positions, new incoming entries
// follow in first-seen order. combine receives (existing, incoming).
func MergeByKey[T any](existing, incoming []T, keyOf func(T) string, combine func(existing, incoming T) T) []T {
	out := make([]T, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, item := range existing {
		k := keyOf(item)
		if i, ok := index[k]; ok {
			out[i] = combine(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}

	for _, item := range incoming {
		k := keyOf(item)
		if i, ok := index[k]; ok {
			out[i] = combine(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}

	return out
}
