package credentials

import (
	"context"
	"sync"
)

// MemoryRepository keeps the credential for the life of the process.
type MemoryRepository struct {
	mu   sync.Mutex
	cred *StoredCredential
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) (*StoredCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cred == nil {
		return nil, nil
	}
	c := *r.cred
	return &c, nil
}

func (r *MemoryRepository) Save(ctx context.Context, c StoredCredential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = &c
	return nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cred = nil
	return nil
}
