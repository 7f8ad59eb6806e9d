// Package token abstracts where the journal API bearer token comes from.
// The running server reads it from the request context (placed there by the
// session middleware); tests substitute a static source. The API client
// depends only on the Source interface, never on session plumbing.
package token

import (
	"context"
	"sync"
)

// Source yields the bearer token for an outgoing API request, if any.
type Source interface {
	// Token returns the current bearer token and whether one is present.
	Token(ctx context.Context) (string, bool)
}

type contextKey struct{}

// NewContext returns a context carrying the given bearer token.
func NewContext(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, contextKey{}, tok)
}

// FromContext extracts the bearer token placed by NewContext.
func FromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(contextKey{}).(string)
	return tok, ok && tok != ""
}

// ContextSource reads the token from the request context. This is the
// source the server uses: the session middleware copies the logged-in
// admin's token into every request context it authenticates.
type ContextSource struct{}

func (ContextSource) Token(ctx context.Context) (string, bool) {
	return FromContext(ctx)
}

// Static is a fixed-token source for tests and scripts.
type Static string

func (s Static) Token(context.Context) (string, bool) {
	return string(s), s != ""
}

// Store is an in-memory credential store with explicit set/clear. It backs
// tests that exercise login flows without a real session layer.
type Store struct {
	mu  sync.RWMutex
	tok string
}

func (s *Store) Token(context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok, s.tok != ""
}

// Set replaces the stored token.
func (s *Store) Set(tok string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
}

// Clear discards the stored token.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
}
