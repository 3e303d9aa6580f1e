package memberRepo

import (
	"context"
	"fmt"
	"sync"

	"studiofit/models"
)

// MemoryMemberRepo is an in-process implementation used by tests and local
// development.
type MemoryMemberRepo struct {
	mu      sync.RWMutex
	members map[string]models.Member
}

func NewMemoryMemberRepo() *MemoryMemberRepo {
	return &MemoryMemberRepo{members: make(map[string]models.Member)}
}

func (repo *MemoryMemberRepo) GetByID(_ context.Context, id string) (*models.Member, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	m, ok := repo.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (repo *MemoryMemberRepo) Create(_ context.Context, m *models.Member) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, exists := repo.members[m.ID]; exists {
		return fmt.Errorf("member %s already exists", m.ID)
	}
	repo.members[m.ID] = *m
	return nil
}
