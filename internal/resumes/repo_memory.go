package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo. IDs start at 1 and are never reused.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	data   map[int64]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		nextID: 1,
		data:   make(map[int64]Resume),
	}
}

// Create stores r under the next ID.
func (m *MemoryRepo) Create(ctx context.Context, r Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextID
	m.nextID++
	m.data[r.ID] = r
	return r, nil
}

func (m *MemoryRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.data[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

// ListUploadedBefore returns records older than cutoff, oldest first.
func (m *MemoryRepo) ListUploadedBefore(ctx context.Context, cutoff time.Time) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Resume, 0)
	for _, r := range m.data {
		if r.UploadedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[id]; !ok {
		return ErrNotFound
	}
	delete(m.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
