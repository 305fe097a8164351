// internal/adapters/in/http/middleware/session_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	"greencart/internal/domain/identity"
)

// FirebaseAuthClient is an alias so DI and handlers can take
// *middleware.FirebaseAuthClient without importing firebase directly.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var ctxKeyProfile = ctxKey{name: "sessionProfile"}

// SessionAuth verifies a Firebase ID token when one is presented and puts
// the resulting session profile {id, email} in the request context.
// Requests without a bearer token pass through as guest; an invalid token
// is rejected. The engine itself never authenticates, it only consumes
// the profile shape.
type SessionAuth struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *SessionAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		if m == nil || m.FirebaseAuth == nil {
			http.Error(w, "auth not configured", http.StatusServiceUnavailable)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if raw, ok := token.Claims["email"]; ok {
			if s, ok2 := raw.(string); ok2 {
				email = strings.TrimSpace(s)
			}
		}

		profile := &identity.Profile{ID: uid, Email: email}
		ctx := context.WithValue(r.Context(), ctxKeyProfile, profile)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentProfile returns the verified session profile, if any.
func CurrentProfile(r *http.Request) (*identity.Profile, bool) {
	v := r.Context().Value(ctxKeyProfile)
	p, ok := v.(*identity.Profile)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// WithProfile injects a profile into the request context. Test helper and
// escape hatch for trusted internal callers.
func WithProfile(r *http.Request, p *identity.Profile) *http.Request {
	if p == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), ctxKeyProfile, p))
}
