// internal/application/usecase/session_manager.go
package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"greencart/internal/application/store"
	"greencart/internal/domain/identity"
)

// Engine bundles the usecases of one storefront session.
type Engine struct {
	ID       string
	Session  *SessionUsecase
	Cart     *CartUsecase
	Wishlist *WishlistUsecase
}

// SessionManager hands out one Engine per storefront session. Each session
// gets its own store profile, mirroring the per-browser-profile scoping of
// the original web storage; sessions never see each other's namespaces.
type SessionManager struct {
	mu       sync.Mutex
	provider store.Provider
	mon      store.Monitor
	stock    AvailabilityChecker
	engines  map[string]*Engine
}

func NewSessionManager(provider store.Provider, mon store.Monitor, stock AvailabilityChecker) *SessionManager {
	return &SessionManager{
		provider: provider,
		mon:      mon,
		stock:    stock,
		engines:  map[string]*Engine{},
	}
}

// Acquire returns the engine for sessionID, creating and starting it on
// first use. An empty sessionID mints a fresh one. profile is only used on
// creation (session restore on a cold server); an already running engine
// changes identity through explicit Login/Logout calls.
func (m *SessionManager) Acquire(ctx context.Context, sessionID string, profile *identity.Profile) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	sid := strings.TrimSpace(sessionID)
	if sid != "" {
		if eng, ok := m.engines[sid]; ok {
			return eng
		}
	}
	if sid == "" {
		sid = uuid.NewString()
	}

	session := NewSessionUsecase(m.provider.ForProfile(sid), m.mon)
	eng := &Engine{
		ID:       sid,
		Session:  session,
		Cart:     NewCartUsecase(session, m.stock),
		Wishlist: NewWishlistUsecase(session),
	}
	m.engines[sid] = eng

	session.Start(ctx, profile)
	return eng
}

// Len reports the number of live engines.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.engines)
}
