package prefix

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// DefaultPrefix triggers text commands in guilds without an override
const DefaultPrefix = "--"

// Backend persists the full guild to prefix map
type Backend interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, prefixes map[string]string) error
}

// Store holds per-guild command prefixes. Every Set rewrites the whole map
// through the backend. Two Sets for the same guild race: last write wins.
type Store struct {
	backend       Backend
	defaultPrefix string
	prefixes      map[string]string
	mu            sync.RWMutex
}

// NewStore loads the persisted map once
func NewStore(ctx context.Context, backend Backend, defaultPrefix string) (*Store, error) {
	if defaultPrefix == "" {
		defaultPrefix = DefaultPrefix
	}

	prefixes, err := backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load prefixes: %w", err)
	}
	if prefixes == nil {
		prefixes = make(map[string]string)
	}

	return &Store{
		backend:       backend,
		defaultPrefix: defaultPrefix,
		prefixes:      prefixes,
	}, nil
}

// Get returns the guild's prefix, or the default
func (s *Store) Get(guildID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.prefixes[guildID]; ok && p != "" {
		return p
	}
	return s.defaultPrefix
}

// Set persists the whole map with the guild's new prefix. The live map only
// changes once the backend accepted it.
func (s *Store) Set(ctx context.Context, guildID, prefix string) error {
	s.mu.RLock()
	snapshot := maps.Clone(s.prefixes)
	s.mu.RUnlock()
	snapshot[guildID] = prefix

	if err := s.backend.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save prefixes: %w", err)
	}

	s.mu.Lock()
	s.prefixes[guildID] = prefix
	s.mu.Unlock()
	return nil
}
