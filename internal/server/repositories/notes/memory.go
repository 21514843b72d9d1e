package notes

import (
	"context"
	"sort"
	"sync"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

type key struct {
	owner, id string
}

// MemoryRepository keeps notes in a map, with the same stale-write guard
// as the postgres implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	notes map[key]models.Note
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notes: make(map[key]models.Note)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{owner: note.OwnerKey, id: note.ID}
	if existing, ok := r.notes[k]; ok && !note.UpdatedAt.After(existing.UpdatedAt) {
		return nil
	}
	r.notes[k] = *note
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerKey string) ([]models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.Note
	for k, n := range r.notes {
		if k.owner == ownerKey {
			result = append(result, n)
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

	delete(r.notes, key{owner: ownerKey, id: id})
	return nil
}
