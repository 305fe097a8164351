// internal/application/usecase/legacy_migration.go
package usecase

import (
	"context"
	"log"

	"greencart/internal/application/store"
	"greencart/internal/domain/cart"
	"greencart/internal/domain/identity"
	"greencart/internal/domain/wishlist"
)

// LegacyMigration promotes the pre-namespace global keys ("cart",
// "wishlist") into the guest namespace, once. A persisted marker per kind
// keeps the promotion idempotent: re-running is a no-op, and a stale
// writer resurrecting a legacy key later cannot duplicate items.
type LegacyMigration struct {
	carts   *store.Keyed[[]cart.Line]
	wishes  *store.Keyed[[]wishlist.Entry]
	markers *store.Keyed[bool]
}

func NewLegacyMigration(s store.Store, mon store.Monitor) *LegacyMigration {
	return &LegacyMigration{
		carts:   store.NewKeyed[[]cart.Line](s, mon),
		wishes:  store.NewKeyed[[]wishlist.Entry](s, mon),
		markers: store.NewKeyed[bool](s, mon),
	}
}

// Run executes both promotions. Called at session start, before the first
// reconciliation.
func (m *LegacyMigration) Run(ctx context.Context) {
	if m == nil {
		return
	}
	migrateKind(ctx, m.markers, m.carts, store.KindCart, cart.Normalize, cart.Merge)
	migrateKind(ctx, m.markers, m.wishes, store.KindWishlist, wishlist.Normalize, wishlist.Merge)
}

// migrateKind moves one legacy key into "{kind}:guest". Existing guest
// data is merged, not overwritten, so promotion never loses namespaced
// writes that happened before migration ran.
func migrateKind[T any](
	ctx context.Context,
	markers *store.Keyed[bool],
	keyed *store.Keyed[[]T],
	kind store.Kind,
	normalize func([]T) []T,
	merge func(existing, incoming []T) []T,
) {
	if markers.Read(ctx, kind.MarkerKey(), false) {
		return
	}

	legacy := normalize(keyed.Read(ctx, kind.LegacyKey(), nil))
	if len(legacy) > 0 {
		guestKey := kind.Key(identity.GuestNamespaceID)
		existing := normalize(keyed.Read(ctx, guestKey, nil))
		keyed.Write(ctx, guestKey, merge(existing, legacy))
		log.Printf("[migration] promoted legacy %s key (%d items)", kind, len(legacy))
	}

	keyed.Remove(ctx, kind.LegacyKey())
	markers.Write(ctx, kind.MarkerKey(), true)
}
