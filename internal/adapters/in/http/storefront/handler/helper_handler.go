// internal/adapters/in/http/storefront/handler/helper_handler.go
package storefrontHandler

import (
	"encoding/json"
	"net/http"
	"strings"

	"greencart/internal/adapters/in/http/middleware"
	"greencart/internal/application/usecase"
)

// sessionCookieName carries the storefront session id between requests
// when the client does not send X-Session-Id itself.
const sessionCookieName = "gc_session"

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestSessionID extracts the session id from X-Session-Id, falling back
// to the session cookie.
func requestSessionID(r *http.Request) string {
	if sid := strings.TrimSpace(r.Header.Get("X-Session-Id")); sid != "" {
		return sid
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// acquireEngine resolves the storefront session engine for r, creating one
// on first contact, and makes sure the response carries the session id
// back to the client (header and cookie).
func acquireEngine(m *usecase.SessionManager, w http.ResponseWriter, r *http.Request) *usecase.Engine {
	sid := requestSessionID(r)
	profile, _ := middleware.CurrentProfile(r)

	eng := m.Acquire(r.Context(), sid, profile)
	if eng.ID != sid {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    eng.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set("X-Session-Id", eng.ID)
	return eng
}
