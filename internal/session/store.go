// Package session keeps per-session conversation state in memory. State lives
// only for the process lifetime; there is no durable persistence.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medkoval/health-companion/internal/core/domain"
)

// Store is an in-memory registry of conversation states keyed by session id.
// The mutex guards the registry map; each session itself is mutated by a
// single synchronous request path at a time.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*domain.ConversationState
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*domain.ConversationState)}
}

func (s *Store) Create() *domain.ConversationState {
	state := &domain.ConversationState{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[state.ID] = state
	return state
}

func (s *Store) Get(id string) (*domain.ConversationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return state, nil
}

func (s *Store) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	state.Reset()
	return nil
}
