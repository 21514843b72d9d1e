package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anandrajbgp/Noteflow/internal/client/gateway"
	"github.com/Anandrajbgp/Noteflow/internal/client/session"
	"github.com/Anandrajbgp/Noteflow/internal/common"
)

// AuthService handles account registration and login. A successful login
// yields the session whose owner key scopes all further record access.
type AuthService interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (session.Session, error)
	// Logout returns the local session the app falls back to.
	Logout() session.Session
}

type authService struct {
	client gateway.Client
}

func NewAuthService(client gateway.Client) AuthService {
	return &authService{client: client}
}

func checkCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", common.ErrValidation)
	}
	return nil
}

func (s *authService) Register(ctx context.Context, username, password string) error {
	if err := checkCredentials(username, password); err != nil {
		return err
	}
	return s.client.Register(ctx, username, password)
}

func (s *authService) Login(ctx context.Context, username, password string) (session.Session, error) {
	if err := checkCredentials(username, password); err != nil {
		return session.Local(), err
	}
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return session.Local(), err
	}
	return session.ForUser(res.UserID, res.Token), nil
}

func (s *authService) Logout() session.Session {
	return session.Local()
}
