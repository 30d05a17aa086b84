// Package storage provides the durable key-value persistence layer
// for the console session.
//
// The session survives process restarts as two entries, the raw token
// and the serialized identity, which are always written and cleared
// together in a single transaction. A Badger-backed store is used by
// the CLI; an in-memory store backs tests.
package storage
