package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

// decodeToken derives the identity from a login token.
//
// The backend's token is treated as a JWT when it parses as one; the
// signature is deliberately not verified here, since the console has
// no key material and the backend is the trust boundary. Tokens that
// are opaque, or JWTs missing claims, fall back to the client-side
// defaults: role by the username rule and a one-hour expiry.
func (s *SessionService) decodeToken(username, token string) *domain.Identity {
	identity := &domain.Identity{
		ID:        "1",
		Username:  username,
		Role:      domain.DefaultRoleFor(username),
		ExpiresAt: s.now().Add(domain.DefaultSessionTTL).Unix(),
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return identity
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return identity
	}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		identity.ID = sub
	} else if id, ok := claims["id"].(string); ok && id != "" {
		identity.ID = id
	}

	if name, ok := claims["username"].(string); ok && name != "" {
		identity.Username = name
	} else if name, ok := claims["name"].(string); ok && name != "" {
		identity.Username = name
	}

	// A role outside the closed set is rejected in favor of the
	// username default, keeping the hierarchy total.
	if role, ok := claims["role"].(string); ok && domain.IsValidRole(role) {
		identity.Role = domain.Role(role)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Unix()
	}

	return identity
}
