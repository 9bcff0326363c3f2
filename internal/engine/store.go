package engine

import (
	"sync"

	"github.com/playduel/centum/internal/centum"
)

// sessionEntry pairs one session with the mutex that serializes its
// read-modify-write cycles. Two concurrent moves on the same session take
// the same lock; operations on distinct sessions never contend.
type sessionEntry struct {
	mu   sync.Mutex
	sess centum.Session
}

// sessionStore is the single source of truth for in-memory session state.
// The outer lock only guards the map; per-session exclusivity lives on
// the entries.
type sessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
}

func newSessionStore() *sessionStore {
	return &sessionStore{entries: make(map[string]*sessionEntry)}
}

func (s *sessionStore) get(id string) (*sessionEntry, bool) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	return e, ok
}

func (s *sessionStore) put(sess centum.Session) *sessionEntry {
	e := &sessionEntry{sess: sess}
	s.mu.Lock()
	s.entries[sess.ID] = e
	s.mu.Unlock()
	return e
}
