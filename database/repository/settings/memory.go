package settingsRepo

import (
	"context"
	"fmt"
	"sync"
)

// MemorySettingsRepo is an in-process implementation used by tests.
type MemorySettingsRepo struct {
	mu    sync.RWMutex
	quota int
}

func NewMemorySettingsRepo(quota int) *MemorySettingsRepo {
	return &MemorySettingsRepo{quota: quota}
}

func (repo *MemorySettingsRepo) GetWeeklyQuota(_ context.Context) (int, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.quota, nil
}

func (repo *MemorySettingsRepo) SetWeeklyQuota(_ context.Context, quota int) error {
	if quota < 0 {
		return fmt.Errorf("weekly quota must be non-negative, got %d", quota)
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.quota = quota
	return nil
}
