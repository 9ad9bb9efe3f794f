// Package mappingstore loads the mapping TOML tree into memory once at
// startup and exposes it as a ports.MappingStore.
package mappingstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/artpar/deadmock/domain/mapping"
)

// Store is an in-memory, read-only-after-load collection of mappings keyed
// by their generated id. Insertion order is irrelevant; lookup by id is not
// part of the matching path (the matcher iterates All()).
type Store struct {
	mu       sync.RWMutex
	mappings map[uuid.UUID]mapping.Mapping
}

// New returns an empty store. Use Load to populate it.
func New() *Store {
	return &Store{mappings: make(map[uuid.UUID]mapping.Mapping)}
}

// Load walks root recursively, parsing every regular file as a TOML
// mapping document and inserting it under a freshly generated id. A parse
// failure for any single file aborts the whole load: partial stores are
// not permitted.
func Load(root string) (*Store, error) {
	s := New()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var f mapping.File
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return fmt.Errorf("parse mapping %s: %w", path, err)
		}

		s.insert(f.ToMapping(uuid.New()))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load mappings from %s: %w", root, err)
	}
	return s, nil
}

func (s *Store) insert(m mapping.Mapping) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[m.ID] = m
}

// All returns every loaded mapping. Map iteration order is randomized per
// call; the matcher breaks priority ties by id so callers never depend on
// the order returned here.
func (s *Store) All() []mapping.Mapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]mapping.Mapping, 0, len(s.mappings))
	for _, m := range s.mappings {
		out = append(out, m)
	}
	return out
}

// Len reports the number of loaded mappings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mappings)
}
