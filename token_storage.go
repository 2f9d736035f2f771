package allauth

import (
	"context"
	"sync"
)

// MemoryTokenStorage keeps credential tokens in process memory. It is the
// default storage: good enough for browser clients (which never hold a
// token) and for short-lived app clients. Use CredentialStore when tokens
// must survive restarts.
type MemoryTokenStorage struct {
	mu     sync.RWMutex
	tokens map[string]string
}

// NewMemoryTokenStorage creates an empty in-memory storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{
		tokens: map[string]string{},
	}
}

// Get returns the token held for scope, or ErrTokenNotFound.
func (s *MemoryTokenStorage) Get(_ context.Context, scope string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[scope]
	if !ok {
		return "", ErrTokenNotFound.WithMetadata(map[string]any{
			"scope": scope,
		})
	}
	return token, nil
}

// Set stores the token for scope, replacing any previous one.
func (s *MemoryTokenStorage) Set(_ context.Context, scope, token string) error {
	s.mu.Lock()
	s.tokens[scope] = token
	s.mu.Unlock()
	return nil
}

// Clear removes the token held for scope. Clearing an absent token is not an
// error.
func (s *MemoryTokenStorage) Clear(_ context.Context, scope string) error {
	s.mu.Lock()
	delete(s.tokens, scope)
	s.mu.Unlock()
	return nil
}
