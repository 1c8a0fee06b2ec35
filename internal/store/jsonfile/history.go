// Package jsonfile implements stores backed by JSON files on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/hay-kot/alertkit/internal/core/history"
)

// historyFile is the root JSON structure stored on disk.
type historyFile struct {
	Entries []history.Entry `json:"entries"`
}

// HistoryStore implements history.Store on a single JSON file. Entries are
// kept newest first.
type HistoryStore struct {
	path       string
	maxEntries int
	mu         sync.RWMutex
}

var _ history.Store = (*HistoryStore)(nil)

// NewHistoryStore creates a store at path. maxEntries caps the number of
// stored entries (0 means unlimited).
func NewHistoryStore(path string, maxEntries int) *HistoryStore {
	return &HistoryStore{path: path, maxEntries: maxEntries}
}

// Path returns the file backing the store.
func (s *HistoryStore) Path() string {
	return s.path
}

func (s *HistoryStore) List(ctx context.Context) ([]history.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.read()
	if err != nil {
		return nil, err
	}
	return f.Entries, nil
}

func (s *HistoryStore) Get(ctx context.Context, id string) (history.Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return history.Entry{}, err
	}

	idx := slices.IndexFunc(entries, func(e history.Entry) bool { return e.ID == id })
	if idx < 0 {
		return history.Entry{}, history.ErrNotFound
	}
	return entries[idx], nil
}

func (s *HistoryStore) Save(ctx context.Context, entry history.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}

	f.Entries = slices.Insert(f.Entries, 0, entry)
	if s.maxEntries > 0 && len(f.Entries) > s.maxEntries {
		f.Entries = f.Entries[:s.maxEntries]
	}

	return s.write(f)
}

func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(historyFile{Entries: []history.Entry{}})
}

// read loads the file. A missing or empty file is an empty history.
func (s *HistoryStore) read() (historyFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return historyFile{}, nil
		}
		return historyFile{}, fmt.Errorf("read history file: %w", err)
	}

	if len(data) == 0 {
		return historyFile{}, nil
	}

	var f historyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return historyFile{}, fmt.Errorf("history file corrupted (run 'alertkit history --clear' to reset): %w", err)
	}
	return f, nil
}

// write replaces the file atomically through a temp file and rename.
func (s *HistoryStore) write(f historyFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename history file: %w", err)
	}
	return nil
}
