package storage

import (
	"context"
	"errors"
)

// Persisted entry keys. Token and identity always change together.
const (
	KeyToken    = "session/token"
	KeyIdentity = "session/identity"

	// KeyDestination remembers the command a denied navigation was
	// headed for, so login can point the user back there.
	KeyDestination = "session/destination"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrClosed      = errors.New("store closed")
)

// Store is a durable key-value store.
//
// Put and Delete are atomic: a concurrent reader observes either all
// of a call's entries or none of them.
type Store interface {
	// Get retrieves the value for a key. Returns ErrKeyNotFound when
	// the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes all entries in one transaction.
	Put(ctx context.Context, entries map[string][]byte) error

	// Delete removes all given keys in one transaction. Missing keys
	// are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases the store. Further calls fail with ErrClosed.
	Close() error
}
