package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/logger"
)

func initLogger(t *testing.T) {
	t.Helper()
	if err := logger.Initialize(config.DefaultConfig().LogLevel); err != nil {
		t.Fatalf("can't initialize logger: %v", err)
	}
}

func TestSession_LoginLogout(t *testing.T) {
	initLogger(t)

	sess := NewSession(NewMemoryStore())

	if sess.IsAuthenticated() {
		t.Fatalf("expected unauthenticated session initially")
	}

	if err := sess.Login("jwt-token"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !sess.IsAuthenticated() {
		t.Errorf("expected authenticated session after login")
	}
	if got := sess.Token(); got != "jwt-token" {
		t.Errorf("expected token 'jwt-token', got '%s'", got)
	}

	if err := sess.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if sess.IsAuthenticated() {
		t.Errorf("expected unauthenticated session after logout")
	}
}

func TestFileStore(t *testing.T) {
	initLogger(t)

	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	if _, err := store.Load(); err != ErrNoToken {
		t.Fatalf("expected ErrNoToken from empty store, got %v", err)
	}

	if err := store.Save("jwt-token"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	token, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if token != "jwt-token" {
		t.Errorf("expected token 'jwt-token', got '%s'", token)
	}

	// повторная очистка не ошибка
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("expected ErrNoToken after clear, got %v", err)
	}
}

func TestWatcher_ExternalChange(t *testing.T) {
	initLogger(t)

	store := NewMemoryStore()
	if err := store.Save("jwt-token"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	watcher := NewWatcher(store, 5*time.Millisecond)
	changes := make(chan bool, 4)
	watcher.OnChange(func(authenticated bool) {
		changes <- authenticated
	})

	watcher.Start(context.Background())
	defer watcher.Stop()

	// другая "вкладка" очищает хранилище
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	select {
	case authenticated := <-changes:
		if authenticated {
			t.Errorf("expected unauthenticated notification after external clear")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected change notification, got none")
	}

	// и логинится заново
	if err := store.Save("new-token"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	select {
	case authenticated := <-changes:
		if !authenticated {
			t.Errorf("expected authenticated notification after external login")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected change notification, got none")
	}
}

func TestWatcher_NoChangeNoNotify(t *testing.T) {
	initLogger(t)

	store := NewMemoryStore()
	if err := store.Save("jwt-token"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	watcher := NewWatcher(store, 5*time.Millisecond)
	changes := make(chan bool, 1)
	watcher.OnChange(func(authenticated bool) {
		changes <- authenticated
	})

	watcher.Start(context.Background())

	time.Sleep(50 * time.Millisecond)
	watcher.Stop()

	select {
	case <-changes:
		t.Errorf("expected no notifications without store changes")
	default:
	}
}
