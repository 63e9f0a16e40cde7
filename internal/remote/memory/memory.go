// Package memory is the in-process remote backend used by tests and
// local development.
package memory

import (
	"context"
	"sync"

	"ledger/internal/payload"
	"ledger/internal/remote"
)

type Store struct {
	mu   sync.Mutex
	data map[string][]payload.Row
}

func New() *Store {
	return &Store{data: map[string][]payload.Row{}}
}

// Write replaces the stored collection for the user key.
func (s *Store) Write(_ context.Context, userKey string, rows []payload.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[remote.SanitizeKey(userKey)] = append([]payload.Row(nil), rows...)
	return nil
}

// Read returns the stored collection, or found=false for unknown keys.
func (s *Store) Read(_ context.Context, userKey string) ([]payload.Row, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.data[remote.SanitizeKey(userKey)]
	if !ok {
		return nil, false, nil
	}
	return append([]payload.Row(nil), rows...), true, nil
}

var _ remote.Backend = (*Store)(nil)
