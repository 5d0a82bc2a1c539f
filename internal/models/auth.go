package models

// AuthRequest - модель для аутентификации пользователя, уходит на бэкенд
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse - модель ответа аутентификации с токеном доступа
type AuthResponse struct {
	Token string `json:"token"`
}
