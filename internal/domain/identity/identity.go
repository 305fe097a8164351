// internal/domain/identity/identity.go
package identity

import "strings"

// GuestNamespaceID is the persistence namespace used before login.
const GuestNamespaceID = "guest"

// Profile is the session profile shape supplied by the auth collaborator
// (Firebase ID token claims on the HTTP edge, or a restored session).
// The engine never authenticates; it only reads this shape.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity is the current principal: guest, or an authenticated account.
// The zero value is guest.
type Identity struct {
	principalID string
}

// Guest returns the anonymous identity.
func Guest() Identity { return Identity{} }

// Authenticated returns the identity for a stable principal id.
// An empty id degrades to guest.
func Authenticated(principalID string) Identity {
	return Identity{principalID: strings.TrimSpace(principalID)}
}

// Resolve computes the identity for a session profile.
// principalId = profile.id, falling back to email. A nil or empty profile
// means guest.
//
// Every namespace key computation must go through Resolve (or the Identity
// it returned). Two call sites disagreeing on the current identity would
// read and write different namespaces for the same logical session, which
// is exactly the bug class this function exists to prevent.
func Resolve(p *Profile) Identity {
	if p == nil {
		return Guest()
	}
	if id := strings.TrimSpace(p.ID); id != "" {
		return Authenticated(id)
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		return Authenticated(email)
	}
	return Guest()
}

// IsGuest reports whether the identity is anonymous.
func (id Identity) IsGuest() bool { return id.principalID == "" }

// PrincipalID returns the account id for authenticated identities.
func (id Identity) PrincipalID() (string, bool) {
	if id.principalID == "" {
		return "", false
	}
	return id.principalID, true
}

// NamespaceID returns the persistence namespace for this identity:
// "guest", or the principal id.
func (id Identity) NamespaceID() string {
	if id.principalID == "" {
		return GuestNamespaceID
	}
	return id.principalID
}

// Equal reports whether two identities name the same principal.
func (id Identity) Equal(other Identity) bool { return id.principalID == other.principalID }

func (id Identity) String() string {
	if id.principalID == "" {
		return "guest"
	}
	return "user:" + id.principalID
}
