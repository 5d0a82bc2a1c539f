package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mavdeev/salesdesk/internal/logger"
)

// Watcher - наблюдатель за внешними изменениями хранилища токена
// (аналог события storage другой вкладки браузера). Гарантий порядка
// нет, побеждает последняя запись в хранилище.
type Watcher struct {
	Store        TokenStore
	PollInterval time.Duration
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}

	mu        sync.Mutex
	callbacks []func(authenticated bool)
	lastToken string
}

// NewWatcher - конструктор наблюдателя за хранилищем токена
func NewWatcher(store TokenStore, interval time.Duration) *Watcher {
	return &Watcher{
		Store:        store,
		PollInterval: interval,
		QuitChan:     make(chan struct{}),
	}
}

// OnChange - подписка на смену состояния аутентификации извне
func (w *Watcher) OnChange(callback func(authenticated bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start - запускает наблюдателя в фоне
func (w *Watcher) Start(ctx context.Context) {
	w.lastToken = w.loadToken()
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает наблюдателя
func (w *Watcher) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *Watcher) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("Session watcher signal stop")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Check()
		}
	}
}

// Check - одна проверка хранилища, уведомляет подписчиков при смене токена
func (w *Watcher) Check() {
	token := w.loadToken()

	w.mu.Lock()
	changed := token != w.lastToken
	w.lastToken = token
	callbacks := w.callbacks
	w.mu.Unlock()

	if !changed {
		return
	}

	logger.Info("Stored credential changed externally")
	for _, callback := range callbacks {
		callback(token != "")
	}
}

func (w *Watcher) loadToken() string {
	token, err := w.Store.Load()
	if err != nil && !errors.Is(err, ErrNoToken) {
		logger.Warn("Failed to read token store:", err)
	}
	return token
}
