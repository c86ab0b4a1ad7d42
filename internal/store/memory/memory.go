// Package memory is an in-process profile store, used by tests and the
// console transport.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/edgard/atbot/internal/store"
)

var errNilProfile = errors.New("cannot save nil profile")

// Store keeps profiles in a map.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]store.Profile
}

// New returns an empty store.
func New() *Store {
	return &Store{profiles: make(map[string]store.Profile)}
}

// Load returns a copy of the profile stored under key.
func (s *Store) Load(ctx context.Context, key string) (*store.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.ReadError(key, err)
	}

	s.mu.RLock()
	p, ok := s.profiles[key]
	s.mu.RUnlock()
	if !ok {
		return nil, store.NotFound(key)
	}
	return &p, nil
}

// Save stores a copy of p under p.Nickname.
func (s *Store) Save(ctx context.Context, p *store.Profile) error {
	if p == nil {
		return store.WriteError("", errNilProfile)
	}
	if err := ctx.Err(); err != nil {
		return store.WriteError(p.Nickname, err)
	}

	s.mu.Lock()
	s.profiles[p.Nickname] = *p
	s.mu.Unlock()
	return nil
}

// Len reports how many profiles are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
