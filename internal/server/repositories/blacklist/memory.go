package blacklist

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]struct{})}
}

func (r *MemoryRepository) Add(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
	return nil
}

func (r *MemoryRepository) Contains(ctx context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[token]
	return ok, nil
}
