// Package credential manages the single session token of the client.
//
// All token access goes through Store so that the storage backend, expiry
// policy and any future encryption have exactly one place to change.
package credential

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/edgeui/internal/kv"
	"github.com/jmylchreest/edgeui/internal/metrics"
)

// TokenKey is the storage key the token is kept under.
const TokenKey = "token"

// ErrPersistence marks a failure of the persistence collaborator. The
// backend's own error stays in the chain.
var ErrPersistence = errors.New("credential persistence failed")

// Error describes a failed credential operation.
type Error struct {
	Op  string // get, set, remove
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s token: %v", e.Op, e.Err)
}

// Unwrap exposes both ErrPersistence and the backend cause to errors.Is and
// errors.As. errors.Unwrap returns nil for multi-error wrappers.
func (e *Error) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Store reads, writes and deletes the session token.
type Store struct {
	kv     kv.Store
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the lifetime of stored tokens. Zero keeps them until removed.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store on top of backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns the current token. ok is false when no token is stored or it
// has expired.
func (s *Store) Token(ctx context.Context) (token string, ok bool, err error) {
	token, ok, err = s.kv.Get(ctx, TokenKey)
	if err != nil {
		s.record("get", err)
		return "", false, &Error{Op: "get", Err: err}
	}
	s.record("get", nil)
	s.logger.Debug("token read", "present", ok)
	return token, ok, nil
}

// SetToken stores token, replacing any existing one. The value is opaque and
// not validated.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := s.kv.Set(ctx, TokenKey, token, kv.SetOptions{TTL: s.ttl}); err != nil {
		s.record("set", err)
		return &Error{Op: "set", Err: err}
	}
	s.record("set", nil)
	s.logger.Debug("token stored", "ttl", s.ttl)
	return nil
}

// RemoveToken deletes the token. Removing a missing token succeeds.
func (s *Store) RemoveToken(ctx context.Context) error {
	if err := s.kv.Delete(ctx, TokenKey); err != nil {
		s.record("remove", err)
		return &Error{Op: "remove", Err: err}
	}
	s.record("remove", nil)
	s.logger.Debug("token removed")
	return nil
}

func (s *Store) record(op string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Warn("credential operation failed", "operation", op, "error", err)
	}
	metrics.CredentialOps.WithLabelValues(op, status).Inc()
}
