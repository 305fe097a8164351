// internal/adapters/in/http/storefront/handler/session_handler.go
package storefrontHandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"greencart/internal/adapters/in/http/middleware"
	"greencart/internal/application/query"
	"greencart/internal/application/usecase"
	"greencart/internal/domain/identity"
)

// SessionHandler serves the session lifecycle endpoints:
// - GET  /api/session         current identity + collection summaries
// - POST /api/session/login   reconcile as the authenticated principal
// - POST /api/session/logout  pre-save, flip to guest, reconcile
type SessionHandler struct {
	sessions *usecase.SessionManager
}

func NewSessionHandler(sessions *usecase.SessionManager) http.Handler {
	return &SessionHandler{sessions: sessions}
}

type sessionResponse struct {
	Identity string                `json:"identity"`
	Guest    bool                  `json:"guest"`
	Cart     query.CartSummary     `json:"cart"`
	Wishlist query.WishlistSummary `json:"wishlist"`
}

func buildSessionResponse(eng *usecase.Engine) sessionResponse {
	id := eng.Session.Current()
	return sessionResponse{
		Identity: id.NamespaceID(),
		Guest:    id.IsGuest(),
		Cart:     query.BuildCartSummary(id, eng.Session.EffectiveCart()),
		Wishlist: query.BuildWishlistSummary(id, eng.Session.EffectiveWishlist()),
	}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.sessions == nil {
		writeErr(w, http.StatusInternalServerError, "session handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	eng := acquireEngine(h.sessions, w, r)

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/session"):
		writeJSON(w, http.StatusOK, buildSessionResponse(eng))

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/login"):
		h.handleLogin(w, r, eng)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/logout"):
		eng.Session.Logout(r.Context())
		writeJSON(w, http.StatusOK, buildSessionResponse(eng))

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type loginRequest struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// handleLogin prefers the verified token profile from middleware; a JSON
// body {id, email} is accepted when no token was presented (local dev,
// tests, trusted internal callers).
func (h *SessionHandler) handleLogin(w http.ResponseWriter, r *http.Request, eng *usecase.Engine) {
	profile, ok := middleware.CurrentProfile(r)
	if !ok {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid body")
			return
		}
		profile = &identity.Profile{ID: req.ID, Email: req.Email}
	}

	if err := eng.Session.Login(r.Context(), *profile); err != nil {
		if errors.Is(err, usecase.ErrSessionInvalidProfile) {
			writeErr(w, http.StatusUnauthorized, "profile has no id or email")
			return
		}
		log.Printf("[session_handler] login failed err=%v", err)
		writeErr(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, buildSessionResponse(eng))
}
