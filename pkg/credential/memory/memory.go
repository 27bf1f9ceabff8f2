// Package memory provides an in-memory credential.Store for development
// and tests. Records are seeded at construction or added via Put and lost
// when the process restarts.
package memory

import (
	"context"
	"sync"

	"github.com/torii-gw/torii/pkg/credential"
)

// Store is an in-memory credential store.
type Store struct {
	mu      sync.RWMutex
	clients map[string]credential.AuthClient
}

// Ensure Store implements credential.Store at compile time.
var _ credential.Store = (*Store)(nil)

// New creates a store seeded with the given records.
func New(seed []credential.AuthClient) *Store {
	s := &Store{clients: make(map[string]credential.AuthClient, len(seed))}
	for _, c := range seed {
		s.clients[c.ClientID] = c
	}
	return s
}

// GetClient returns a copy of the record for the given client id.
func (s *Store) GetClient(_ context.Context, clientID string) (*credential.AuthClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientID]
	if !ok {
		return nil, credential.ErrNotFound
	}
	return &c, nil
}

// Put inserts or replaces a record. Provisioning helper, not part of the
// read-only store contract the verifier sees.
func (s *Store) Put(c credential.AuthClient) {
	s.mu.Lock()
	s.clients[c.ClientID] = c
	s.mu.Unlock()
}
