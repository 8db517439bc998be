package disposition

import (
	"context"
	"fmt"
	"sync"

	"github.com/rkimidis/acucare-pathways/internal/domain"
)

// MemoryStore is an in-memory Store for tests and single-process use.
// The check-and-insert happens under one mutex, so two racing finalize
// calls for the same case cannot both succeed.
type MemoryStore struct {
	mu     sync.Mutex
	byCase map[string]*domain.FinalDisposition
}

// NewMemoryStore creates an empty in-memory disposition store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCase: make(map[string]*domain.FinalDisposition),
	}
}

// Create inserts the final disposition unless the case already has one.
func (s *MemoryStore) Create(_ context.Context, final *domain.FinalDisposition) error {
	if final == nil {
		return fmt.Errorf("final disposition is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byCase[final.CaseID]; exists {
		return fmt.Errorf("%w: case %s", domain.ErrAlreadyFinalized, final.CaseID)
	}

	stored := *final
	s.byCase[final.CaseID] = &stored
	return nil
}

// Get returns the final disposition for a case, or (nil, nil) if none.
func (s *MemoryStore) Get(_ context.Context, caseID string) (*domain.FinalDisposition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byCase[caseID]
	if !ok {
		return nil, nil
	}
	copied := *stored
	return &copied, nil
}

// Count returns the number of finalized cases.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byCase)), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
