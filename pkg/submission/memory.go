package submission

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryGateway keeps records in process memory. It backs headless runs and
// tests that do not need a database.
type MemoryGateway struct {
	mu      sync.RWMutex
	records map[string]StoredRecord
	now     func() time.Time
}

// NewMemoryGateway returns an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		records: make(map[string]StoredRecord),
		now:     time.Now,
	}
}

// Create stores a copy of record under a fresh id.
func (g *MemoryGateway) Create(ctx context.Context, record Record) (StoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return StoredRecord{}, err
	}
	record.FormData = record.FormData.Clone()
	stored := StoredRecord{
		ID:        uuid.NewString(),
		Record:    record,
		CreatedAt: g.now().UTC(),
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[stored.ID] = stored
	return stored, nil
}

// Get returns the record stored under id.
func (g *MemoryGateway) Get(_ context.Context, id string) (StoredRecord, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rec, ok := g.records[id]
	if !ok {
		return StoredRecord{}, ErrNotFound
	}
	return rec, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (g *MemoryGateway) List(_ context.Context, limit int) ([]StoredRecord, error) {
	g.mu.RLock()
	out := make([]StoredRecord, 0, len(g.records))
	for _, rec := range g.records {
		out = append(out, rec)
	}
	g.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
