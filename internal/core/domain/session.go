package domain

import "time"

// DefaultSessionTTL is applied when a token carries no expiry claim.
const DefaultSessionTTL = time.Hour

// Session pairs a credential token with its decoded Identity.
//
// Token and Identity are both present or both absent, never one
// without the other. A Session value is immutable once constructed;
// login, logout and refresh replace the whole record.
type Session struct {
	// Token is the opaque bearer credential.
	Token string `json:"token"`

	// Identity is the decoded user record.
	Identity *Identity `json:"identity"`
}

// NewSession pairs a token with its identity. Both must be present.
func NewSession(token string, identity *Identity) (*Session, error) {
	if token == "" || identity == nil {
		return nil, ErrSessionDecode.WithDetails("token and identity must both be present")
	}
	return &Session{Token: token, Identity: identity}, nil
}

// IsExpired reports whether the session's identity has expired.
func (s *Session) IsExpired(now time.Time) bool {
	return s.Identity.IsExpired(now)
}

// Validate reports whether the session is still usable at the given
// instant. An expiry at or before now yields ErrSessionExpired.
func (s *Session) Validate(now time.Time) error {
	if s.IsExpired(now) {
		return ErrSessionExpired.WithDetails(
			"expired at " + time.Unix(s.Identity.ExpiresAt, 0).UTC().Format(time.RFC3339))
	}
	return nil
}

// DefaultRoleFor returns the role applied when the backend supplies
// none: the literal "admin" username maps to the admin role, anything
// else to user. A placeholder for server-supplied roles.
func DefaultRoleFor(username string) Role {
	if username == "admin" {
		return RoleAdmin
	}
	return RoleUser
}
