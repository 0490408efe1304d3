// Package session provides the in-memory session backing used by
// single-instance deployments. Multi-instance deployments should use the
// Redis-backed store instead.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/marketplace/identity-service/internal/core/domain"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded map keyed by session identifier. Expired
// entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, sid string, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = entry{session: session, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (*domain.Session, error) {
	s.mu.RLock()
	e, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, sid)
		s.mu.Unlock()
		return nil, nil
	}
	session := e.session
	return &session, nil
}

// Delete removes the session; deleting an absent identifier reports
// (false, nil), never an error.
func (s *MemoryStore) Delete(_ context.Context, sid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[sid]
	delete(s.entries, sid)
	return ok, nil
}

// Len reports the number of live entries, expired ones included until their
// next access. Used by the readiness probe and tests.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
