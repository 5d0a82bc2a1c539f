package session

import (
	"errors"

	"github.com/mavdeev/salesdesk/internal/logger"
)

// Session - состояние аутентификации, производное от наличия токена в хранилище.
// Токен каждый раз читается заново, кэша нет: другой процесс мог
// перезаписать или очистить хранилище.
type Session struct {
	store TokenStore
}

// Создание сессии
func NewSession(store TokenStore) *Session {
	return &Session{store: store}
}

// Token - возвращает актуальный токен доступа, пустая строка если его нет
func (s *Session) Token() string {
	token, err := s.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			logger.Warn("Failed to load token:", err)
		}
		return ""
	}
	return token
}

// IsAuthenticated - признак активной сессии
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Login - сохраняет токен, полученный при аутентификации
func (s *Session) Login(token string) error {
	return s.store.Save(token)
}

// Logout - очищает токен, все защищённые операции становятся недоступны
func (s *Session) Logout() error {
	return s.store.Clear()
}
