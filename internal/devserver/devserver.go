package devserver

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenSecretAlgo     = "HS256"
	TokenExpirationTime = 24 * time.Hour
)

// Server - локальная заглушка бэкенда заказов: тот же REST-контракт,
// данные в памяти. Нужна для разработки и интеграционных тестов клиента.
type Server struct {
	Config       config.DevServerConfig
	JWTAuth      *jwtauth.JWTAuth
	Storage      storage.Storage
	InvoiceDelay time.Duration

	passwordHash []byte
}

// NewServer - конструктор заглушки. invoiceDelay - через сколько после
// создания заказа "генерируется" накладная (для отладки опроса).
func NewServer(cfg config.DevServerConfig, invoiceDelay time.Duration) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{
		Config:       cfg,
		JWTAuth:      jwtauth.New(TokenSecretAlgo, []byte(cfg.JWTSecret), nil),
		Storage:      storage.NewStorage(),
		InvoiceDelay: invoiceDelay,
		passwordHash: hash,
	}, nil
}

// Authenticate - проверка пары логин/пароль
func (s *Server) Authenticate(username string, password string) bool {
	if username != s.Config.Login {
		return false
	}
	return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
}

// GenerateJWT - создание строки JWT токена
func (s *Server) GenerateJWT(username string) (string, error) {
	expirationTime := time.Now().Add(TokenExpirationTime)

	_, tokenString, err := s.JWTAuth.Encode(map[string]interface{}{
		"username": username,
		"exp":      expirationTime,
	})
	return tokenString, err
}
