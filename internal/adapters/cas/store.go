// Package cas implements build info storage addressed by target name.
package cas

import (
	"sync"

	"go.trai.ch/mortar/internal/core/domain"
)

// Store implements ports.BuildInfoStore with an in-process map. Build state
// on disk is carried entirely by the object files and the target executable,
// so records do not survive the process and no state file is written into
// the project directory.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.BuildRecord
}

// NewStore creates an empty build info store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.BuildRecord),
	}
}

// Get retrieves the build record for a given target name. It returns
// (nil, nil) when no record exists.
func (s *Store) Get(target string) (*domain.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[target]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the build record, replacing any previous record for the
// same target.
func (s *Store) Put(record domain.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Target] = record
	return nil
}
