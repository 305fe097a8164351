// internal/adapters/out/kv/firestore_store.go
package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"greencart/internal/application/store"
)

// Firestore layout:
// - collection: storefrontProfiles
// - docId: profileId
// - subcollection: keys, docId = namespace key ("cart:guest", "wishlist:u1", ...)
// - fields: value (raw JSON payload), updatedAt
//
// Namespace keys never contain "/", but sanitizeDocID guards anyway so a
// hostile key cannot address a different document path.
const (
	profilesCollection = "storefrontProfiles"
	keysCollection     = "keys"
)

type kvDoc struct {
	Value     []byte    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// FirestoreProvider hands out per-profile stores over one Firestore client.
type FirestoreProvider struct {
	Client *firestore.Client
}

func NewFirestoreProvider(client *firestore.Client) *FirestoreProvider {
	return &FirestoreProvider{Client: client}
}

func (p *FirestoreProvider) ForProfile(profileID string) store.Store {
	return &FirestoreStore{Client: p.Client, ProfileID: strings.TrimSpace(profileID)}
}

// FirestoreStore implements store.Store for one storefront profile.
type FirestoreStore struct {
	Client    *firestore.Client
	ProfileID string
}

func (s *FirestoreStore) doc(key string) *firestore.DocumentRef {
	return s.Client.
		Collection(profilesCollection).Doc(sanitizeDocID(s.ProfileID)).
		Collection(keysCollection).Doc(sanitizeDocID(key))
}

func (s *FirestoreStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil || s.Client == nil {
		return nil, false, fmt.Errorf("firestore_store: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, fmt.Errorf("firestore_store: key is empty")
	}

	snap, err := s.doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("firestore_store: get %q: %w", key, err)
	}

	var d kvDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, false, fmt.Errorf("firestore_store: decode %q: %w", key, err)
	}
	return d.Value, true, nil
}

func (s *FirestoreStore) Set(ctx context.Context, key string, value []byte) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("firestore_store: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("firestore_store: key is empty")
	}

	_, err := s.doc(key).Set(ctx, kvDoc{Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("firestore_store: set %q: %w", key, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("firestore_store: client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("firestore_store: key is empty")
	}

	_, err := s.doc(key).Delete(ctx)
	if err != nil {
		return fmt.Errorf("firestore_store: delete %q: %w", key, err)
	}
	return nil
}

func sanitizeDocID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.ReplaceAll(id, "/", "__")
	if id == "" || id == "." || id == ".." {
		return "_"
	}
	return id
}
