// Package users persists registered accounts.
package users

import (
	"context"

	"github.com/Anandrajbgp/Noteflow/internal/server/models"
)

type Repository interface {
	// Create inserts a new account. Returns common.ErrLoginAlreadyExists
	// when the login is taken.
	Create(ctx context.Context, login, passwordHash string) (*models.User, error)

	// GetByLogin returns the account or common.ErrNotFound.
	GetByLogin(ctx context.Context, login string) (*models.User, error)
}
