package tasks

import (
	"context"
	"sort"
	"sync"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

type key struct {
	owner, id string
}

// MemoryRepository keeps tasks in a map, with the same stale-write guard
// as the postgres implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[key]models.Task
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[key]models.Task)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{owner: task.OwnerKey, id: task.ID}
	if existing, ok := r.tasks[k]; ok && !task.UpdatedAt.After(existing.UpdatedAt) {
		return nil
	}
	r.tasks[k] = *task
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerKey string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Task
	for k, t := range r.tasks {
		if k.owner == ownerKey {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerKey, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, key{owner: ownerKey, id: id})
	return nil
}
