package access

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu          sync.RWMutex
	whitelist   map[string]bool
	mintEnabled bool
	seeded      bool
}

// NewMemoryRepository constructs an in-memory repository for tests and dev mode.
func NewMemoryRepository() Repository {
	return &memoryRepository{whitelist: make(map[string]bool)}
}

func (r *memoryRepository) IsWhitelisted(_ context.Context, principal string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.whitelist[principal], nil
}

func (r *memoryRepository) SetWhitelisted(_ context.Context, principal string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.whitelist[principal] = enabled
	return nil
}

func (r *memoryRepository) MintEnabled(_ context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mintEnabled, nil
}

func (r *memoryRepository) SetMintEnabled(_ context.Context, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mintEnabled = enabled
	return nil
}

func (r *memoryRepository) Seed(_ context.Context, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seeded {
		return nil
	}
	r.whitelist[owner] = true
	r.mintEnabled = true
	r.seeded = true
	return nil
}
