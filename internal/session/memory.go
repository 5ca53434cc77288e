package session

import (
	"context"
	"sync"

	"github.com/rentfront/gateway/internal/domain"
)

// MemoryStore is a process-local Store for tests and single-node runs.
type MemoryStore struct {
	m        sync.RWMutex
	sessions map[string]*domain.CheckoutSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.CheckoutSession),
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*domain.CheckoutSession, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	copied.Items = append([]domain.CartItem(nil), session.Items...)
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, session *domain.CheckoutSession) error {
	s.m.Lock()
	defer s.m.Unlock()
	copied := *session
	copied.Items = append([]domain.CartItem(nil), session.Items...)
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
