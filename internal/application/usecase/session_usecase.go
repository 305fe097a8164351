// internal/application/usecase/session_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"greencart/internal/application/store"
	"greencart/internal/domain/cart"
	"greencart/internal/domain/identity"
	"greencart/internal/domain/wishlist"
)

var (
	ErrSessionInvalidProfile = errors.New("session_usecase: profile has no id or email")

	// ErrSessionSuperseded means the identity changed between the start of
	// a mutation (for example while a stock answer was in flight) and its
	// commit. The mutation is discarded; it belonged to the old identity.
	ErrSessionSuperseded = errors.New("session_usecase: identity changed, mutation discarded")
)

// SessionUsecase is the session lifecycle controller. It owns the current
// identity, the effective in-memory collections, and the reconciliation
// that runs on every identity transition (start, login, logout, warm
// reload). A single mutex serializes everything, standing in for the
// single-threaded event loop of the original runtime: no two
// reconciliations ever interleave within one session.
type SessionUsecase struct {
	mu sync.Mutex

	carts     *store.Keyed[[]cart.Line]
	wishes    *store.Keyed[[]wishlist.Entry]
	migration *LegacyMigration

	current     identity.Identity
	cartLines   []cart.Line
	wishEntries []wishlist.Entry
	started     bool

	subs map[string]chan identity.Identity
}

func NewSessionUsecase(s store.Store, mon store.Monitor) *SessionUsecase {
	return &SessionUsecase{
		carts:     store.NewKeyed[[]cart.Line](s, mon),
		wishes:    store.NewKeyed[[]wishlist.Entry](s, mon),
		migration: NewLegacyMigration(s, mon),
		subs:      map[string]chan identity.Identity{},
	}
}

// Start runs legacy key migration once, then reconciles for the restored
// profile. nil profile is a cold guest start; a non-nil profile is a warm
// reload while authenticated, which takes the same merge path as a fresh
// login and is idempotent by construction (the guest namespace is deleted
// when a merge happens, so re-merging finds nothing to absorb).
func (s *SessionUsecase) Start(ctx context.Context, profile *identity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.migration.Run(ctx)
		s.started = true
	}
	s.transitionLocked(ctx, identity.Resolve(profile))
}

// Login resolves the new identity and reconciles. Guest activity merges
// into the authenticated namespaces; the guest cart namespace is absorbed
// and deleted.
func (s *SessionUsecase) Login(ctx context.Context, profile identity.Profile) error {
	next := identity.Resolve(&profile)
	if next.IsGuest() {
		return ErrSessionInvalidProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transitionLocked(ctx, next)
	return nil
}

// Logout pre-saves the outgoing identity's in-memory collections to its
// namespaces, flips to guest, then reconciles. Pending in-memory edits
// belong to the outgoing principal and must land on disk before the view
// resets; afterwards the effective collections show only what the guest
// namespaces hold, never a line exclusive to the departed account.
func (s *SessionUsecase) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pid, ok := s.current.PrincipalID(); ok {
		persistCollection(ctx, s.carts, store.KindCart.Key(pid), cart.Normalize(s.cartLines))
		persistCollection(ctx, s.wishes, store.KindWishlist.Key(pid), wishlist.Normalize(s.wishEntries))
	}
	s.transitionLocked(ctx, identity.Guest())
}

// Current returns the identity the session is reconciled for.
func (s *SessionUsecase) Current() identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// EffectiveCart returns the reconciled in-memory cart for the current
// identity.
func (s *SessionUsecase) EffectiveCart() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cart.Clone(s.cartLines)
}

// EffectiveWishlist returns the reconciled in-memory wishlist for the
// current identity.
func (s *SessionUsecase) EffectiveWishlist() []wishlist.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wishlist.Clone(s.wishEntries)
}

// UpdateCartFor applies fn to the effective cart and persists the result
// to the current identity's namespace, but only when the session still
// belongs to want. A mutation whose stock answer arrives after logout must
// not leak into the new identity's cart.
func (s *SessionUsecase) UpdateCartFor(ctx context.Context, want identity.Identity, fn func([]cart.Line) ([]cart.Line, error)) ([]cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Equal(want) {
		return nil, ErrSessionSuperseded
	}

	next, err := fn(cart.Clone(s.cartLines))
	if err != nil {
		return nil, err
	}
	next = cart.Normalize(next)
	s.cartLines = next
	persistCollection(ctx, s.carts, store.KindCart.Key(s.current.NamespaceID()), next)
	return cart.Clone(next), nil
}

// UpdateWishlistFor is the wishlist counterpart of UpdateCartFor.
func (s *SessionUsecase) UpdateWishlistFor(ctx context.Context, want identity.Identity, fn func([]wishlist.Entry) ([]wishlist.Entry, error)) ([]wishlist.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Equal(want) {
		return nil, ErrSessionSuperseded
	}

	next, err := fn(wishlist.Clone(s.wishEntries))
	if err != nil {
		return nil, err
	}
	next = wishlist.Normalize(next)
	s.wishEntries = next
	persistCollection(ctx, s.wishes, store.KindWishlist.Key(s.current.NamespaceID()), next)
	return wishlist.Clone(next), nil
}

// Subscribe registers an identity-change listener so dependents (cart
// badge, product cards) re-render after reconciliation completes. The
// channel is a wake-up signal holding at most one pending notification; a
// superseded notification is simply dropped, consumers re-read effective
// state on wake.
func (s *SessionUsecase) Subscribe() (string, <-chan identity.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan identity.Identity, 1)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener. Idempotent.
func (s *SessionUsecase) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// transitionLocked reconciles both collections for the new identity and
// notifies subscribers. Caller holds s.mu.
func (s *SessionUsecase) transitionLocked(ctx context.Context, next identity.Identity) {
	prev := s.current
	s.current = next
	s.cartLines = reconcile(ctx, s.carts, store.KindCart, next, cart.Normalize, cart.Merge)
	s.wishEntries = reconcile(ctx, s.wishes, store.KindWishlist, next, wishlist.Normalize, wishlist.Merge)

	if !prev.Equal(next) {
		log.Printf("[session] identity %s -> %s (cart=%d wishlist=%d)", prev, next, len(s.cartLines), len(s.wishEntries))
	}

	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
		}
	}
}

// reconcile computes the effective collection for id and rewrites the
// persisted namespaces when a guest merge happens:
//
//   - guest identity: effective = guest namespace, no writes
//   - authenticated, guest empty: effective = identity namespace, no writes
//   - authenticated, guest non-empty: merge, persist to the identity
//     namespace, delete the guest namespace (absorbed, not duplicated)
func reconcile[T any](
	ctx context.Context,
	keyed *store.Keyed[[]T],
	kind store.Kind,
	id identity.Identity,
	normalize func([]T) []T,
	merge func(identityColl, guestColl []T) []T,
) []T {
	guestKey := kind.Key(identity.GuestNamespaceID)
	guest := normalize(keyed.Read(ctx, guestKey, nil))

	pid, ok := id.PrincipalID()
	if !ok {
		return guest
	}

	ownKey := kind.Key(pid)
	own := normalize(keyed.Read(ctx, ownKey, nil))
	if len(guest) == 0 {
		return own
	}

	merged := merge(own, guest)
	keyed.Write(ctx, ownKey, merged)
	keyed.Remove(ctx, guestKey)
	return merged
}

// persistCollection writes a collection to its namespace key, or removes
// the key when the collection is empty. Empty collections are never
// materialized; absence and emptiness read back the same.
func persistCollection[T any](ctx context.Context, keyed *store.Keyed[[]T], key string, items []T) {
	if len(items) == 0 {
		keyed.Remove(ctx, key)
		return
	}
	keyed.Write(ctx, key, items)
}
