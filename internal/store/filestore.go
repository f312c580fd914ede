package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cashpoint/cashpoint/internal/ledger"
)

// FileStore persists the full ledger as a single JSON document on disk.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore builds a store writing to the given path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted ledger. When no file exists yet it seeds the demo
// ledger, persists it and returns it.
func (s *FileStore) Load(ctx context.Context) (ledger.Ledger, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		demo := ledger.Demo()
		if err := s.Save(ctx, demo); err != nil {
			return nil, err
		}
		s.logger.Info("seeded demo ledger", "path", s.path, "accounts", len(demo))
		return demo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrPersistence, s.path, err)
	}
	defer f.Close()

	var l ledger.Ledger
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrPersistence, s.path, err)
	}
	return l, nil
}

// Save serializes the whole ledger to a temporary file and renames it over
// the target, so a concurrent reader never observes a partial document.
func (s *FileStore) Save(_ context.Context, l ledger.Ledger) error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersistence, tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode ledger: %v", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrPersistence, tmp, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}
