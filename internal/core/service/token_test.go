package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestDecodeToken(t *testing.T) {
	svc := newTestService(&mockSessionRepo{}, &mockAuthenticator{})
	fixedNow := time.Unix(1_700_000_000, 0)
	svc.now = func() time.Time { return fixedNow }

	t.Run("opaque token falls back to defaults", func(t *testing.T) {
		id := svc.decodeToken("admin", "not-a-jwt")
		if id.ID != "1" {
			t.Errorf("ID = %q, want 1", id.ID)
		}
		if id.Username != "admin" {
			t.Errorf("Username = %q, want admin", id.Username)
		}
		if id.Role != domain.RoleAdmin {
			t.Errorf("Role = %q, want admin", id.Role)
		}
		want := fixedNow.Add(domain.DefaultSessionTTL).Unix()
		if id.ExpiresAt != want {
			t.Errorf("ExpiresAt = %d, want %d", id.ExpiresAt, want)
		}
	})

	t.Run("jwt claims override defaults", func(t *testing.T) {
		exp := fixedNow.Add(30 * time.Minute)
		token := signedToken(t, jwt.MapClaims{
			"sub":      "42",
			"username": "jdoe",
			"role":     "viewer",
			"exp":      exp.Unix(),
		})

		id := svc.decodeToken("admin", token)
		if id.ID != "42" {
			t.Errorf("ID = %q, want 42", id.ID)
		}
		if id.Username != "jdoe" {
			t.Errorf("Username = %q, want jdoe", id.Username)
		}
		if id.Role != domain.RoleViewer {
			t.Errorf("Role = %q, want viewer", id.Role)
		}
		if id.ExpiresAt != exp.Unix() {
			t.Errorf("ExpiresAt = %d, want %d", id.ExpiresAt, exp.Unix())
		}
	})

	t.Run("unknown role claim keeps username default", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"role": "superuser"})

		id := svc.decodeToken("jdoe", token)
		if id.Role != domain.RoleUser {
			t.Errorf("Role = %q, want user", id.Role)
		}
	})

	t.Run("id claim used when sub is absent", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"id": "7", "name": "alt-name"})

		id := svc.decodeToken("admin", token)
		if id.ID != "7" {
			t.Errorf("ID = %q, want 7", id.ID)
		}
		if id.Username != "alt-name" {
			t.Errorf("Username = %q, want alt-name", id.Username)
		}
	})

	t.Run("jwt without exp keeps default ttl", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "9"})

		id := svc.decodeToken("admin", token)
		want := fixedNow.Add(domain.DefaultSessionTTL).Unix()
		if id.ExpiresAt != want {
			t.Errorf("ExpiresAt = %d, want %d", id.ExpiresAt, want)
		}
	})
}
