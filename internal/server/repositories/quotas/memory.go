package quotas

import (
	"context"
	"sync"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
)

// MemoryRepository keeps counters in process. The mutex makes it the single
// writer, which is only correct while one server instance is running.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]Record)}
}

func (r *MemoryRepository) Consume(_ context.Context, subject string, limit, windowSecs, now int64) (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[subject]
	if !ok || now-rec.WindowStart >= windowSecs {
		rec = Record{Subject: subject, WindowStart: now}
	}
	rec.Limit = limit

	granted := rec.Count < limit
	if granted {
		rec.Count++
	}
	r.records[subject] = rec

	return rec, granted, nil
}

func (r *MemoryRepository) Get(_ context.Context, subject string) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[subject]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}
