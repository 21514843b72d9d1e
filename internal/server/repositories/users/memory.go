package users

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

// MemoryRepository keeps accounts in a map. Used in tests and for running
// the server without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	byLogin map[string]*models.User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byLogin: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, login, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[login]; ok {
		return nil, common.ErrLoginAlreadyExists
	}
	user := &models.User{ID: uuid.NewString(), Login: login, PasswordHash: passwordHash}
	r.byLogin[login] = user
	return user, nil
}

func (r *MemoryRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byLogin[login]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *user
	return &u, nil
}
