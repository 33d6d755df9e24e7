// Package linkstore persists the aggregated link collection as a flat JSON
// file. The file is the sole durable state and is overwritten wholesale on
// each extraction run.
package linkstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/clipshelf/clipshelf/internal/domain"
)

// Store reads and writes the links file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Save overwrites the links file with the given entries. The write goes to a
// temp file first and is renamed into place so readers never observe a
// partial file.
func (s *Store) Save(entries []domain.LinkEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []domain.LinkEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal links: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create links directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".links-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write links: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace links file: %w", err)
	}
	return nil
}

// Load returns the persisted entries. A missing file is reported as
// domain.ErrLinksNotExtracted, which is a distinct condition from a file
// that exists but cannot be parsed (domain.ErrLinksUnreadable).
func (s *Store) Load() ([]domain.LinkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrLinksNotExtracted
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLinksUnreadable, err)
	}

	var entries []domain.LinkEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLinksUnreadable, err)
	}
	return entries, nil
}
