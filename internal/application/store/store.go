// internal/application/store/store.go
package store

import (
	"context"
	"encoding/json"
	"log"
)

// Store is the string-keyed byte store the engine persists into.
// Get returns (nil, false, nil) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Provider partitions the backing store per storefront profile, mirroring
// the per-browser-profile scoping of the original web storage. Profiles
// never see each other's namespaces.
type Provider interface {
	ForProfile(profileID string) Store
}

// Monitor receives store failures that Keyed swallows. A persistence
// failure must never block the shopping flow, but silent data loss has to
// stay diagnosable, so every swallowed failure is reported exactly once
// through this hook.
type Monitor interface {
	StoreFailure(op string, key string, err error)
}

// LogMonitor is the default Monitor: one tagged log line per failure.
type LogMonitor struct{}

func (LogMonitor) StoreFailure(op, key string, err error) {
	log.Printf("[store] WARN: %s failed key=%q err=%v", op, key, err)
}

// Keyed is a guarded JSON codec over Store for values of type T.
//
// Read never fails: absent keys, malformed payloads and backend errors all
// degrade to the caller-supplied default. Write and Remove swallow backend
// errors the same way. The worst observable outcome of a broken store is a
// stale collection, not an error surfaced to the user.
type Keyed[T any] struct {
	store Store
	mon   Monitor
}

// NewKeyed builds a Keyed codec. A nil mon falls back to LogMonitor.
func NewKeyed[T any](s Store, mon Monitor) *Keyed[T] {
	if mon == nil {
		mon = LogMonitor{}
	}
	return &Keyed[T]{store: s, mon: mon}
}

// Read returns the decoded value for key, or def when the key is absent,
// malformed, or the backend fails.
func (k *Keyed[T]) Read(ctx context.Context, key string, def T) T {
	if k == nil || k.store == nil {
		return def
	}
	raw, ok, err := k.store.Get(ctx, key)
	if err != nil {
		k.mon.StoreFailure("read", key, err)
		return def
	}
	if !ok || len(raw) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		k.mon.StoreFailure("decode", key, err)
		return def
	}
	return v
}

// Write serializes v under key. Failures are reported to the Monitor and
// otherwise dropped.
func (k *Keyed[T]) Write(ctx context.Context, key string, v T) {
	if k == nil || k.store == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		k.mon.StoreFailure("encode", key, err)
		return
	}
	if err := k.store.Set(ctx, key, raw); err != nil {
		k.mon.StoreFailure("write", key, err)
	}
}

// Remove deletes key. Idempotent; failures are reported to the Monitor.
func (k *Keyed[T]) Remove(ctx context.Context, key string) {
	if k == nil || k.store == nil {
		return
	}
	if err := k.store.Delete(ctx, key); err != nil {
		k.mon.StoreFailure("remove", key, err)
	}
}
