// Package session issues and validates the opaque tokens that gate
// appointment reads.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultTTL is how long an issued token stays valid.
	DefaultTTL = 24 * time.Hour
	// DefaultMaxSessions bounds the active set.
	DefaultMaxSessions = 10000

	tokenBytes = 32
)

// ErrSessionInvalid is returned for unknown, expired or revoked tokens.
var ErrSessionInvalid = errors.New("session expired or invalid")

// Store is the active token set. Entries expire on their own after the TTL;
// validation never extends an entry.
//
// The set holds at most maxSessions tokens. Issuing past that limit evicts the
// oldest issued token even if it has not expired, so that user must log in
// again. Expiry runs on a background goroutine owned by the LRU that lives as
// long as the process; create one Store per process.
type Store struct {
	tokens *expirable.LRU[string, time.Time]
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store. Non-positive values fall back to the defaults.
func NewStore(ttl time.Duration, maxSessions int, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	s := &Store{
		tokens: expirable.NewLRU[string, time.Time](maxSessions, nil, ttl),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a new token and adds it to the active set.
func (s *Store) Issue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session.Issue: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	s.tokens.Add(token, s.now().Add(s.ttl))
	return token, nil
}

// Validate reports whether token is in the active set. Peek is used so the
// entry's recency and expiry are left untouched.
func (s *Store) Validate(token string) bool {
	if token == "" {
		return false
	}
	expiresAt, ok := s.tokens.Peek(token)
	if !ok {
		return false
	}
	if !s.now().Before(expiresAt) {
		s.tokens.Remove(token)
		return false
	}
	return true
}

// Revoke removes token. Removing an absent token is a no-op.
func (s *Store) Revoke(token string) {
	s.tokens.Remove(token)
}

// Len returns the number of tokens still held.
func (s *Store) Len() int {
	return s.tokens.Len()
}

// TTL returns the configured lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
