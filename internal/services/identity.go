package services

import (
	"context"
	"errors"

	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IdentityService interface {
	Login(ctx context.Context, username string, password string) error
	Logout() error
	IsAuthenticated() bool
}

type Identity struct {
	Gateway client.Gateway
	Session *session.Session
}

// Создание сервиса
func NewIdentity(gateway client.Gateway, sess *session.Session) *Identity {
	return &Identity{Gateway: gateway, Session: sess}
}

// Login - аутентификация на бэкенде и сохранение токена в сессию
func (s *Identity) Login(ctx context.Context, username string, password string) error {
	logger.Info("Authenticate user", username)

	token, err := s.Gateway.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			logger.Warn("Invalid password", username)
			return ErrInvalidCredentials
		}
		logger.Error("Error authenticating user", username, err)
		return err
	}

	if err := s.Session.Login(token); err != nil {
		logger.Error("Error storing token", err)
		return err
	}
	logger.Info("User authenticated", username)
	return nil
}

// Logout - очистка сохранённого токена
func (s *Identity) Logout() error {
	logger.Info("Logout")
	return s.Session.Logout()
}

// IsAuthenticated - признак активной сессии
func (s *Identity) IsAuthenticated() bool {
	return s.Session.IsAuthenticated()
}
