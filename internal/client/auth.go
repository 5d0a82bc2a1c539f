package client

import (
	"context"

	"github.com/mavdeev/salesdesk/internal/models"
)

// Login - аутентификация на бэкенде, возвращает токен доступа
func (c *Client) Login(ctx context.Context, username string, password string) (string, error) {
	request := models.AuthRequest{
		Username: username,
		Password: password,
	}

	var response models.AuthResponse
	if err := c.postJSON(ctx, "/auth/login", request, &response); err != nil {
		return "", err
	}
	return response.Token, nil
}
