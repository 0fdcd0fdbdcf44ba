// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package saved persists the saved-book list.
// Implements: prd002-saved-list (R1-R3);
//
//	docs/ARCHITECTURE § Saved List.
//
// The list is a flat, order-preserving array keyed by work key. The whole
// list is written to one JSON file on every mutation and hydrated from it
// on open; this mirrors browser local storage, which the list is the CLI
// analog of.
package saved

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/openshelf/pkg/types"
)

const defaultPath = "saved.json"

// Store holds the in-memory saved list and its backing file.
type Store struct {
	path  string
	books []types.SavedBook
}

// Open hydrates the saved list from cfg.Path (R1.1). A missing file is an
// empty list; a file that exists but does not parse is an error, never
// silent data loss (R1.4).
func Open(cfg types.SavedConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading saved list %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.books); err != nil {
		return nil, fmt.Errorf("parsing saved list %s: %w", path, err)
	}
	return s, nil
}

// List returns the saved books in insertion order.
func (s *Store) List() []types.SavedBook {
	out := make([]types.SavedBook, len(s.books))
	copy(out, s.books)
	return out
}

// Len returns the number of saved books.
func (s *Store) Len() int {
	return len(s.books)
}

// Contains reports whether key is in the list. Lookup is linear; the list
// is a handful of entries.
func (s *Store) Contains(key string) bool {
	return s.indexOf(key) >= 0
}

func (s *Store) indexOf(key string) int {
	for i, b := range s.books {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// Add appends b to the list and flushes (R2.1). It reports false without
// writing when the key is already present.
func (s *Store) Add(b types.Book) (bool, error) {
	if s.Contains(b.Key) {
		return false, nil
	}
	s.books = append(s.books, types.SavedBook{Book: b, SavedAt: time.Now().UTC()})
	if err := s.flush(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the entry with the given key and flushes (R2.2). It
// reports false without writing when the key is absent.
func (s *Store) Remove(key string) (bool, error) {
	i := s.indexOf(key)
	if i < 0 {
		return false, nil
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	if err := s.flush(); err != nil {
		return false, err
	}
	return true, nil
}

// Toggle adds b when its key is absent and removes it when present
// (R2.3). It reports whether the book ended up saved.
func (s *Store) Toggle(b types.Book) (saved bool, err error) {
	if s.Contains(b.Key) {
		_, err := s.Remove(b.Key)
		return false, err
	}
	_, err = s.Add(b)
	return err == nil, err
}

// Clear empties the list and flushes.
func (s *Store) Clear() error {
	s.books = nil
	return s.flush()
}

// flush serializes the whole list to the backing file (R1.2). Every
// mutation rewrites the full state.
func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating saved list directory: %w", err)
		}
	}

	books := s.books
	if books == nil {
		books = []types.SavedBook{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling saved list: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing saved list %s: %w", s.path, err)
	}
	return nil
}
