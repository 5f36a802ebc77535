package storage

import (
	"fmt"
	"sync"

	"github.com/cloudpine/rubbertree/pkg/types"
)

// MemoryStore is an in-process Store for tests and single-process
// callers. It provides no durability; a restart forgets every fragment
// and with it the overlap guarantees of previously assigned shards.
type MemoryStore struct {
	mu          sync.RWMutex
	fragments   map[string]struct{}
	assignments map[string]*types.ShardAssignment
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		fragments:   make(map[string]struct{}),
		assignments: make(map[string]*types.ShardAssignment),
	}
}

func (s *MemoryStore) SaveFragment(fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments[fragment] = struct{}{}
	return nil
}

func (s *MemoryStore) IsFragmentUsed(fragment string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, used := s.fragments[fragment]
	return used, nil
}

// FragmentCount returns how many distinct fragments have been saved.
func (s *MemoryStore) FragmentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fragments)
}

func (s *MemoryStore) CreateAssignment(assignment *types.ShardAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignment.ID] = assignment
	return nil
}

func (s *MemoryStore) GetAssignment(id string) (*types.ShardAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment not found: %s", id)
	}
	return assignment, nil
}

func (s *MemoryStore) GetAssignmentByIdentifier(identifier string) (*types.ShardAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, assignment := range s.assignments {
		if assignment.Identifier == identifier {
			return assignment, nil
		}
	}
	return nil, fmt.Errorf("assignment not found: %s", identifier)
}

func (s *MemoryStore) ListAssignments() ([]*types.ShardAssignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	assignments := make([]*types.ShardAssignment, 0, len(s.assignments))
	for _, assignment := range s.assignments {
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

func (s *MemoryStore) DeleteAssignment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
