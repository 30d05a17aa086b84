package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelarde/attendctl-go/internal/core/domain"
)

// SessionRecords persists the console session as its two entries.
// Both are written and cleared together, so a restart never observes
// a token without an identity or the other way around.
type SessionRecords struct {
	store Store
}

// NewSessionRecords wraps a Store with the session record layout.
func NewSessionRecords(store Store) *SessionRecords {
	return &SessionRecords{store: store}
}

// Save writes the token and serialized identity in one transaction.
func (r *SessionRecords) Save(ctx context.Context, s *domain.Session) error {
	identity, err := s.Identity.Encode()
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	return r.store.Put(ctx, map[string][]byte{
		KeyToken:    []byte(s.Token),
		KeyIdentity: identity,
	})
}

// Load reads the persisted session. It returns (nil, nil) when no
// session is stored, and domain.ErrSessionDecode when the stored
// state is incomplete or malformed so the caller can purge it.
func (r *SessionRecords) Load(ctx context.Context) (*domain.Session, error) {
	token, errToken := r.store.Get(ctx, KeyToken)
	identityData, errIdentity := r.store.Get(ctx, KeyIdentity)

	if errors.Is(errToken, ErrKeyNotFound) && errors.Is(errIdentity, ErrKeyNotFound) {
		return nil, nil
	}
	if errToken != nil || errIdentity != nil {
		// One entry without the other breaks the session invariant.
		if errors.Is(errToken, ErrKeyNotFound) || errors.Is(errIdentity, ErrKeyNotFound) {
			return nil, domain.ErrSessionDecode.WithDetails("partial session record")
		}
		if errToken != nil {
			return nil, errToken
		}
		return nil, errIdentity
	}

	identity, err := domain.DecodeIdentity(identityData)
	if err != nil {
		return nil, err
	}
	return domain.NewSession(string(token), identity)
}

// Purge removes both entries in one transaction. Removing an already
// empty record is not an error.
func (r *SessionRecords) Purge(ctx context.Context) error {
	return r.store.Delete(ctx, KeyToken, KeyIdentity)
}

// RememberDestination stores the command a denied navigation wanted
// to reach.
func (r *SessionRecords) RememberDestination(ctx context.Context, destination string) error {
	return r.store.Put(ctx, map[string][]byte{
		KeyDestination: []byte(destination),
	})
}

// RecallDestination returns the remembered destination, or "" when
// none is stored.
func (r *SessionRecords) RecallDestination(ctx context.Context) (string, error) {
	dest, err := r.store.Get(ctx, KeyDestination)
	if errors.Is(err, ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(dest), nil
}

// ForgetDestination clears the remembered destination.
func (r *SessionRecords) ForgetDestination(ctx context.Context) error {
	return r.store.Delete(ctx, KeyDestination)
}
