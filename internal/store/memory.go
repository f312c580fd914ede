package store

import (
	"context"
	"sync"

	"github.com/cashpoint/cashpoint/internal/ledger"
)

// MemoryStore keeps the last saved ledger in memory. Tests use it in place of
// a FileStore.
type MemoryStore struct {
	mu       sync.RWMutex
	saved    ledger.Ledger
	saves    int
	failSave error
}

// NewMemoryStore builds a memory store preloaded with the given ledger.
func NewMemoryStore(seed ledger.Ledger) *MemoryStore {
	if seed == nil {
		seed = ledger.Demo()
	}
	return &MemoryStore{saved: seed.Clone()}
}

// Load returns a deep copy of the last saved ledger.
func (s *MemoryStore) Load(_ context.Context) (ledger.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Clone(), nil
}

// Save snapshots the ledger, or fails with the configured error.
func (s *MemoryStore) Save(_ context.Context, l ledger.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave != nil {
		return s.failSave
	}
	s.saved = l.Clone()
	s.saves++
	return nil
}

// FailSaves makes subsequent saves return err. Pass nil to restore normal
// behavior.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave = err
}

// Saves reports how many saves have succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Saved returns a deep copy of the last persisted ledger for assertions.
func (s *MemoryStore) Saved() ledger.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Clone()
}
