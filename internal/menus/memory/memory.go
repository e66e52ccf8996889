// Package memory is an in-process Gateway adapter used by tests and the
// "memory" backend.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

type Store struct {
	mu      sync.Mutex
	records map[string][]byte
}

func New() *Store {
	return &Store{records: map[string][]byte{}}
}

// Load returns the bundle stored under id, or menus.ErrNotFound.
func (s *Store) Load(_ context.Context, id string) (core.MenuBundle, error) {
	s.mu.Lock()
	raw, ok := s.records[id]
	s.mu.Unlock()
	if !ok {
		return core.MenuBundle{}, menus.ErrNotFound
	}
	var b core.MenuBundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return core.MenuBundle{}, fmt.Errorf("decode bundle %s: %w", id, err)
	}
	return b.Normalize(), nil
}

// Save replaces the record under id, minting an identifier when id is empty.
// Records are kept serialized so callers get deep copies back, same as a
// real store.
func (s *Store) Save(_ context.Context, id string, b core.MenuBundle) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}
	if id == "" {
		id = MintID()
	}
	s.mu.Lock()
	s.records[id] = raw
	s.mu.Unlock()
	return id, nil
}

// Len reports the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// MintID produces a short opaque identifier, the same 10-character shape
// as the ids already in circulation.
func MintID() string {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; be loud if it does.
		panic(fmt.Sprintf("mint id: %v", err))
	}
	return hex.EncodeToString(buf)
}
