package accumulator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no accumulator exists for an id.
var ErrNotFound = errors.New("accumulator not found")

// Store keeps independent accumulators keyed by id.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Accumulator

	historyLimit int
}

// NewStore creates a store whose accumulators keep at most historyLimit
// undo entries (0 for unbounded).
func NewStore(historyLimit int) *Store {
	return &Store{
		items:        make(map[string]*Accumulator),
		historyLimit: historyLimit,
	}
}

// Create registers a new accumulator starting at initial and returns its id.
func (s *Store) Create(initial float64) (string, *Accumulator) {
	acc := New(WithInitialValue(initial), WithHistoryLimit(s.historyLimit))
	id := uuid.New().String()

	s.mu.Lock()
	s.items[id] = acc
	s.mu.Unlock()

	return id, acc
}

// Get returns the accumulator registered under id.
func (s *Store) Get(id string) (*Accumulator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return acc, nil
}

// Delete removes the accumulator registered under id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of live accumulators.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
