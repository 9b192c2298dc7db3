// Package memstore is an in-memory store.Store implementation for tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/credence-io/credence/pkg/credence/internalerr"
	"github.com/credence-io/credence/pkg/credence/store"
)

// Store keeps analyses in a map guarded by a RWMutex.
type Store struct {
	mu       sync.RWMutex
	analyses map[string]store.Analysis
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{analyses: make(map[string]store.Analysis)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveAnalysis inserts or replaces an analysis by ID.
func (s *Store) SaveAnalysis(ctx context.Context, a store.Analysis) error {
	if a.ID == "" {
		return internalerr.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
	return nil
}

// GetAnalysis returns an analysis by ID.
func (s *Store) GetAnalysis(ctx context.Context, id string) (store.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.analyses[id]; ok {
		return a, nil
	}
	return store.Analysis{}, internalerr.ErrNotFound
}

// ListAnalyses returns analyses newest first.
func (s *Store) ListAnalyses(ctx context.Context, limit int) ([]store.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	out := make([]store.Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
