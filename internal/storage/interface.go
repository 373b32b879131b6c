package storage

import (
	"context"
	"errors"
)

// Keys under which the session is persisted
const (
	KeyToken  = "token"
	KeyUserID = "userId"
)

// SessionKeys lists every key that belongs to a session
var SessionKeys = []string{KeyToken, KeyUserID}

// ErrKeyNotFound is returned by Get when the key holds no value
var ErrKeyNotFound = errors.New("key not found")

// SessionStore is persistent client-side key/value storage that survives
// between page lifecycles (CLI invocations). The session guard is its only
// writer.
type SessionStore interface {
	// Get returns the value for key, or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes the given keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	// Clear removes every key held by the store
	Clear(ctx context.Context) error
}
