// Package auth manages acquisition and caching of the client-credentials
// bearer token used for every Spotify catalog call. A Store holds at most one
// current token and refreshes it on demand when a caller observes it missing
// or expired. Refreshing is single-flight: concurrent catalog calls that race
// over an expired token perform exactly one exchange between them.

package auth

import (
	"context"
	"sync"
	"time"
)

// Token is a bearer token together with the instant it stops being usable.
// Expiry is computed by the provider from the issue time and the expires_in
// value returned by the authorization server.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token can still be presented at the given
// instant. A zero token is never valid.
func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Provider performs the credential exchange with the authorization server.
type Provider interface {
	// Refresh obtains a fresh token. Failures are returned as ConfigError,
	// AuthError or a transport error and are never retried here.
	Refresh(ctx context.Context) (Token, error)
}

// Store caches the current token and decides when a refresh is required.
// The zero value is not usable; construct with NewStore.
type Store struct {
	mu       sync.Mutex
	provider Provider
	tok      Token

	// now is replaceable in tests.
	now func() time.Time
}

// NewStore returns a Store that obtains tokens from p. No exchange happens
// until the first Token or Bearer call.
func NewStore(p Provider) *Store {
	return &Store{provider: p, now: time.Now}
}

// Token returns the current token, refreshing it first when it is absent or
// expired. The mutex is held across the refresh so overlapping callers wait
// for the in-flight exchange instead of issuing redundant ones. A refresh
// failure is returned to the caller and leaves no token stored; stale values
// are never substituted.
func (s *Store) Token(ctx context.Context) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok.Valid(s.now()) {
		return s.tok, nil
	}
	tok, err := s.provider.Refresh(ctx)
	if err != nil {
		return Token{}, err
	}
	s.tok = tok
	return s.tok, nil
}

// Bearer returns just the token value for use in an Authorization header.
func (s *Store) Bearer(ctx context.Context) (string, error) {
	tok, err := s.Token(ctx)
	if err != nil {
		return "", err
	}
	return tok.Value, nil
}
