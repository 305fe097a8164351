// internal/application/usecase/session_usecase_test.go
package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencart/internal/adapters/out/kv"
	"greencart/internal/application/store"
	"greencart/internal/domain/cart"
	"greencart/internal/domain/identity"
	"greencart/internal/domain/wishlist"
)

func seedLines(t *testing.T, s store.Store, key string, lines []cart.Line) {
	t.Helper()
	raw, err := json.Marshal(lines)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), key, raw))
}

func seedEntries(t *testing.T, s store.Store, key string, entries []wishlist.Entry) {
	t.Helper()
	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), key, raw))
}

func readLines(t *testing.T, s store.Store, key string) []cart.Line {
	t.Helper()
	raw, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	if !ok {
		return nil
	}
	var lines []cart.Line
	require.NoError(t, json.Unmarshal(raw, &lines))
	return lines
}

func hasKey(t *testing.T, s store.Store, key string) bool {
	t.Helper()
	_, ok, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestStartMigratesLegacyKeys(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedLines(t, s, "cart", []cart.Line{{ProductID: "A", Quantity: 2}})
	seedEntries(t, s, "wishlist", []wishlist.Entry{{ProductID: "W"}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)

	assert.Equal(t, []cart.Line{{ProductID: "A", Quantity: 2}}, sess.EffectiveCart())
	assert.Equal(t, []wishlist.Entry{{ProductID: "W"}}, sess.EffectiveWishlist())

	// legacy keys promoted into the guest namespace and removed
	assert.False(t, hasKey(t, s, "cart"))
	assert.False(t, hasKey(t, s, "wishlist"))
	assert.True(t, hasKey(t, s, "cart:guest"))
	assert.True(t, hasKey(t, s, "migrated:cart"))
	assert.True(t, hasKey(t, s, "migrated:wishlist"))
}

func TestMigrationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedLines(t, s, "cart", []cart.Line{{ProductID: "A", Quantity: 2}})

	NewSessionUsecase(s, nil).Start(ctx, nil)

	// a stale writer resurrects the legacy key after promotion ran
	seedLines(t, s, "cart", []cart.Line{{ProductID: "A", Quantity: 2}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)

	// the marker blocks re-promotion; no quantity doubling
	assert.Equal(t, []cart.Line{{ProductID: "A", Quantity: 2}}, sess.EffectiveCart())
}

func TestMigrationMergesIntoExistingGuestData(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedLines(t, s, "cart:guest", []cart.Line{{ProductID: "B", Quantity: 1}})
	seedLines(t, s, "cart", []cart.Line{{ProductID: "A", Quantity: 2}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)

	assert.Equal(t, []cart.Line{
		{ProductID: "B", Quantity: 1},
		{ProductID: "A", Quantity: 2},
	}, sess.EffectiveCart())
}

func TestLoginMergesGuestIntoIdentity(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedLines(t, s, "cart:guest", []cart.Line{{ProductID: "A", Quantity: 2, Name: "Aloe"}})
	seedLines(t, s, "cart:u-1", []cart.Line{{ProductID: "B", Quantity: 1}, {ProductID: "A", Quantity: 1}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	// identity lines keep position, collision sums, guest snapshot wins
	got := sess.EffectiveCart()
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].ProductID)
	assert.Equal(t, "A", got[1].ProductID)
	assert.Equal(t, 3, got[1].Quantity)
	assert.Equal(t, "Aloe", got[1].Name)

	// guest namespace absorbed, identity namespace persisted
	assert.False(t, hasKey(t, s, "cart:guest"))
	assert.Equal(t, got, readLines(t, s, "cart:u-1"))
}

func TestLoginWithEmptyGuestLeavesIdentityUntouched(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	own := []cart.Line{{ProductID: "B", Quantity: 1}}
	seedLines(t, s, "cart:u-1", own)

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	assert.Equal(t, own, sess.EffectiveCart())
	// no merge happened, so no rewrite of the identity namespace
	assert.Equal(t, own, readLines(t, s, "cart:u-1"))
}

func TestLoginRejectsEmptyProfile(t *testing.T) {
	ctx := context.Background()
	sess := NewSessionUsecase(kv.NewMemoryStore(), nil)
	sess.Start(ctx, nil)

	err := sess.Login(ctx, identity.Profile{})
	assert.ErrorIs(t, err, ErrSessionInvalidProfile)
	assert.True(t, sess.Current().IsGuest())
}

func TestLoginFallsBackToEmail(t *testing.T) {
	ctx := context.Background()
	sess := NewSessionUsecase(kv.NewMemoryStore(), nil)
	sess.Start(ctx, nil)

	require.NoError(t, sess.Login(ctx, identity.Profile{Email: "mint@example.com"}))
	assert.Equal(t, "mint@example.com", sess.Current().NamespaceID())
}

func TestLogoutIsolatesIdentityData(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	_, err := sess.UpdateCartFor(ctx, sess.Current(), func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Add(lines, cart.Line{ProductID: "A", Quantity: 2})
	})
	require.NoError(t, err)

	sess.Logout(ctx)

	// guest view never shows the departed account's lines
	assert.True(t, sess.Current().IsGuest())
	assert.Empty(t, sess.EffectiveCart())

	// the identity namespace kept them for the next login
	assert.Equal(t, 2, cart.Quantity(readLines(t, s, "cart:u-1"), "A"))
}

func TestWarmReloadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedLines(t, s, "cart:guest", []cart.Line{{ProductID: "A", Quantity: 2}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))
	after := sess.EffectiveCart()

	// reload while authenticated takes the same merge path; the guest
	// namespace is already gone, so nothing doubles
	sess.Start(ctx, &identity.Profile{ID: "u-1"})
	assert.Equal(t, after, sess.EffectiveCart())
}

func TestUpdateCartForStaleIdentity(t *testing.T) {
	ctx := context.Background()
	sess := NewSessionUsecase(kv.NewMemoryStore(), nil)
	sess.Start(ctx, nil)

	stale := sess.Current()
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	_, err := sess.UpdateCartFor(ctx, stale, func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Add(lines, cart.Line{ProductID: "A", Quantity: 1})
	})
	assert.ErrorIs(t, err, ErrSessionSuperseded)
	assert.Empty(t, sess.EffectiveCart())
}

func TestEmptyCollectionRemovesKey(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)

	_, err := sess.UpdateCartFor(ctx, sess.Current(), func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Add(lines, cart.Line{ProductID: "A", Quantity: 1})
	})
	require.NoError(t, err)
	require.True(t, hasKey(t, s, "cart:guest"))

	_, err = sess.UpdateCartFor(ctx, sess.Current(), func(lines []cart.Line) ([]cart.Line, error) {
		return cart.Remove(lines, "A"), nil
	})
	require.NoError(t, err)
	assert.False(t, hasKey(t, s, "cart:guest"))
}

func TestSubscribeNotifiesOnTransition(t *testing.T) {
	ctx := context.Background()
	sess := NewSessionUsecase(kv.NewMemoryStore(), nil)
	sess.Start(ctx, nil)

	id, ch := sess.Subscribe()
	defer sess.Unsubscribe(id)

	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	select {
	case got := <-ch:
		assert.Equal(t, "u-1", got.NamespaceID())
	default:
		t.Fatal("expected an identity notification")
	}

	// a second pending notification is dropped, not blocked on
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-2"}))
	sess.Logout(ctx)
}

func TestWishlistMergeOnLogin(t *testing.T) {
	ctx := context.Background()
	s := kv.NewMemoryStore()
	seedEntries(t, s, "wishlist:guest", []wishlist.Entry{{ProductID: "A"}, {ProductID: "C"}})
	seedEntries(t, s, "wishlist:u-1", []wishlist.Entry{{ProductID: "A"}, {ProductID: "B"}})

	sess := NewSessionUsecase(s, nil)
	sess.Start(ctx, nil)
	require.NoError(t, sess.Login(ctx, identity.Profile{ID: "u-1"}))

	got := sess.EffectiveWishlist()
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].ProductID)
	assert.Equal(t, "B", got[1].ProductID)
	assert.Equal(t, "C", got[2].ProductID)

	assert.False(t, hasKey(t, s, "wishlist:guest"))
}
