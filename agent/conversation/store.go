package conversation

import (
	"sync"

	"github.com/securebank/callcenter-agent/agent/contract"
)

// Store is the in-memory session table. Lookups are concurrent-safe; the
// contexts themselves are owned by one turn at a time.
type Store struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

func NewStore() *Store {
	return &Store{contexts: make(map[string]*Context)}
}

func (s *Store) Put(ctx *Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[ctx.SessionID] = ctx
}

func (s *Store) Get(sessionID string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx, ok := s.contexts[sessionID]
	if !ok {
		return nil, contract.ErrSessionNotFound
	}
	return ctx, nil
}

// Remove deletes and returns the context, so the caller can summarize it.
func (s *Store) Remove(sessionID string) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.contexts[sessionID]
	if !ok {
		return nil, contract.ErrSessionNotFound
	}
	delete(s.contexts, sessionID)
	return ctx, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
