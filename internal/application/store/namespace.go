// internal/application/store/namespace.go
package store

// Kind is a persisted collection kind. Each (kind, namespace) pair maps to
// exactly one store key holding one collection.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
)

// Key returns the namespaced store key: "{kind}:{namespaceId}".
func (k Kind) Key(namespaceID string) string {
	return string(k) + ":" + namespaceID
}

// LegacyKey is the pre-namespace global key this kind was stored under
// before namespacing existed.
func (k Kind) LegacyKey() string {
	return string(k)
}

// MarkerKey is the key of the persisted migration marker for this kind.
// Once the marker is set, legacy promotion is skipped even if the legacy
// key reappears.
func (k Kind) MarkerKey() string {
	return "migrated:" + string(k)
}
