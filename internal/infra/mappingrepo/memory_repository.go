package mappingrepo

import (
	"context"
	"sync"

	"github.com/yanqian/weather-beats/internal/domain/mapping"
)

// MemoryRepository is an in-memory mapping.Store used for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []mapping.Mapping
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Find returns the first mapping inserted for the condition and mood.
func (r *MemoryRepository) Find(_ context.Context, condition, mood string) (mapping.Mapping, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.items {
		if m.WeatherCondition == condition && m.Mood == mood {
			return m, true, nil
		}
	}
	return mapping.Mapping{}, false, nil
}

// Insert implements mapping.Store.
func (r *MemoryRepository) Insert(_ context.Context, m mapping.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, m)
	return nil
}

// List implements mapping.Store.
func (r *MemoryRepository) List(_ context.Context) ([]mapping.Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]mapping.Mapping(nil), r.items...), nil
}

// Count implements mapping.Store.
func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

var _ mapping.Store = (*MemoryRepository)(nil)
