// Package users implements account registration and login for the HTTP API.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Anandrajbgp/Noteflow/internal/common"
	"github.com/Anandrajbgp/Noteflow/internal/server/auth"
	"github.com/Anandrajbgp/Noteflow/internal/server/models"
	"github.com/Anandrajbgp/Noteflow/internal/server/repositories/users"
)

// LoginResult is returned on successful login.
type LoginResult struct {
	UserID      string
	AccessToken string
}

type Service struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo users.Repository, jwtSecret []byte, tokenValidityDuration time.Duration) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             jwtSecret,
		tokenValidityDuration: tokenValidityDuration,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, login, password string) (*models.User, error) {
	if login == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: login and a password of at least 8 characters are required", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user, err := s.repo.Create(ctx, login, string(hash))
	if err != nil {
		if errors.Is(err, common.ErrLoginAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and mints an access token. Unknown logins
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	user, err := s.repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{UserID: user.ID, AccessToken: token}, nil
}
