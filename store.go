package allauth

import "sync"

// SessionStore holds the last session payload seen by the transport. It is
// the single source of truth for "who is signed in right now": nil until the
// first successful fetch, replaced on every subsequent change, never torn
// down. Only the transport writes to it; everything else reads snapshots.
type SessionStore struct {
	mu      sync.RWMutex
	payload *SessionPayload
	loaded  bool
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

var (
	defaultStore     *SessionStore
	defaultStoreOnce sync.Once
)

// DefaultStore returns the process-wide session store, creating it on first
// use.
func DefaultStore() *SessionStore {
	defaultStoreOnce.Do(func() {
		defaultStore = NewSessionStore()
	})
	return defaultStore
}

// Replace installs a new payload. Whichever caller replaces last wins; the
// store does no sequencing of its own.
func (s *SessionStore) Replace(payload *SessionPayload) {
	s.mu.Lock()
	s.payload = payload
	s.loaded = true
	s.mu.Unlock()
}

// Current returns the last payload seen, or nil before the first fetch.
func (s *SessionStore) Current() *SessionPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload
}

// Loaded reports whether any payload has been installed yet. It stays true
// once set, even if the session later becomes anonymous.
func (s *SessionStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// AuthInfo derives the posture of the current payload. Before the first
// fetch this is the anonymous posture.
func (s *SessionStore) AuthInfo() AuthInfo {
	return DeriveAuthInfo(s.Current())
}
