package store

import (
	"context"
	"time"
)

// Key prefixes keep session markers and verification codes in disjoint
// keyspaces even though they share one Redis database.
const (
	sessionPrefix = "session:"
	codePrefix    = "verify:"
)

// SessionStore tracks the single live refresh marker per user. Overwriting
// the marker is what revokes the previous session.
type SessionStore struct {
	store Ephemeral
}

// NewSessionStore wraps an Ephemeral store with the session keyspace.
func NewSessionStore(store Ephemeral) *SessionStore {
	return &SessionStore{store: store}
}

// Save records the live refresh token for the user, replacing any prior one.
func (s *SessionStore) Save(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	return s.store.Set(ctx, sessionPrefix+userID, refreshToken, ttl)
}

// Exists reports whether the user still has a live session marker.
func (s *SessionStore) Exists(ctx context.Context, userID string) (bool, error) {
	return s.store.Exists(ctx, sessionPrefix+userID)
}

// Get returns the live refresh token, or ErrNotFound when the session was
// revoked or has expired.
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	return s.store.Get(ctx, sessionPrefix+userID)
}

// Delete removes the marker, revoking the session. Idempotent.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, sessionPrefix+userID)
}

// CodeStore holds pending email verification codes keyed by address.
type CodeStore struct {
	store Ephemeral
}

// NewCodeStore wraps an Ephemeral store with the verification keyspace.
func NewCodeStore(store Ephemeral) *CodeStore {
	return &CodeStore{store: store}
}

// Save stores the code for the address with the given TTL.
func (s *CodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.store.Set(ctx, codePrefix+email, code, ttl)
}

// Get returns the pending code, or ErrNotFound once expired or consumed.
func (s *CodeStore) Get(ctx context.Context, email string) (string, error) {
	return s.store.Get(ctx, codePrefix+email)
}

// Delete consumes the code. Idempotent.
func (s *CodeStore) Delete(ctx context.Context, email string) error {
	return s.store.Delete(ctx, codePrefix+email)
}
