package store

import (
	"context"
	"sync"

	"github.com/jonathan/apply-assistant/internal/types"
)

// MemoryStore keeps the profile in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	profile *types.Profile
}

// NewMemoryStore returns a store holding p, or a default profile when p is nil.
func NewMemoryStore(p *types.Profile) *MemoryStore {
	if p == nil {
		p = types.NewProfile()
	}
	return &MemoryStore{profile: p.Clone()}
}

// Get returns a copy of the stored profile.
func (s *MemoryStore) Get(_ context.Context) (*types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone(), nil
}

// Save replaces the stored profile with a copy of p.
func (s *MemoryStore) Save(_ context.Context, p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p.Clone()
	return nil
}
