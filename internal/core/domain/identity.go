package domain

import (
	"encoding/json"
	"time"
)

// Identity is the decoded user record derived from a credential token.
type Identity struct {
	// ID is the opaque user identifier.
	ID string `json:"id"`

	// Username is the display name.
	Username string `json:"username"`

	// Role is the access role. Values outside the closed set are kept
	// for display but never grant access (level zero).
	Role Role `json:"role"`

	// ExpiresAt is the absolute expiry timestamp in seconds since epoch.
	ExpiresAt int64 `json:"exp"`
}

// IsExpired reports whether the identity's expiry has passed at the
// given instant. An expiry exactly equal to now counts as expired:
// validity requires a strictly future expiry.
func (id *Identity) IsExpired(now time.Time) bool {
	return id.ExpiresAt <= now.Unix()
}

// Encode serializes the identity for durable persistence.
func (id *Identity) Encode() ([]byte, error) {
	return json.Marshal(id)
}

// DecodeIdentity parses a persisted identity record. Malformed data
// yields ErrSessionDecode so callers can purge and fall back to an
// empty session.
func DecodeIdentity(data []byte) (*Identity, error) {
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, ErrSessionDecode.WithCause(err)
	}
	if id.Username == "" {
		return nil, ErrSessionDecode.WithDetails("missing username")
	}
	return &id, nil
}
