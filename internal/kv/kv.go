// Package kv provides the key/value persistence backends used for session
// state: an in-memory store, a JSON file store and a Redis store. All of them
// support per-entry expiry.
package kv

import (
	"context"
	"errors"
	"time"
)

// Store is a small key/value store with expiry semantics.
type Store interface {
	// Get returns the value for key. ok is false when the key is unset or
	// has expired; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string, opts SetOptions) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// SetOptions controls how a value is stored.
type SetOptions struct {
	// TTL is the lifetime of the entry. Zero means it never expires.
	TTL time.Duration
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Errors
var (
	// ErrUnavailable marks failures of the underlying storage medium
	// (unwritable directory, unreachable server, quota exhausted).
	ErrUnavailable = errors.New("storage unavailable")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// expiresAt converts a TTL into an absolute deadline (zero = never).
func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// expired reports whether deadline has passed at now.
func expired(deadline, now time.Time) bool {
	return !deadline.IsZero() && !now.Before(deadline)
}
