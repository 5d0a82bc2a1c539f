package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
)

// fakeClock - ручной источник времени: тик уходит автомату только
// когда тест его отправит
type fakeClock struct {
	ticks chan time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{ticks: make(chan time.Time)}
}

func (c *fakeClock) After(_ time.Duration) <-chan time.Time {
	return c.ticks
}

func (c *fakeClock) Tick() {
	c.ticks <- time.Now()
}

// fakeFetcher - шлюз, отдающий заранее заданную последовательность ответов
type fakeFetcher struct {
	mu       sync.Mutex
	attempts int
	// ответы по номерам попыток, начиная с 1
	invoiceAt map[int]string
	errAt     map[int]error
}

func (f *fakeFetcher) GetOrder(_ context.Context, orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if err, ok := f.errAt[f.attempts]; ok {
		return nil, err
	}
	return &models.Order{OrderID: orderID, InvoiceURL: f.invoiceAt[f.attempts]}, nil
}

func (f *fakeFetcher) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

func initLogger(t *testing.T) {
	t.Helper()
	if err := logger.Initialize(config.DefaultConfig().LogLevel); err != nil {
		t.Fatalf("can't initialize logger: %v", err)
	}
}

func TestPoller_DoneOnLastAttempt(t *testing.T) {
	initLogger(t)

	clock := newFakeClock()
	fetcher := &fakeFetcher{invoiceAt: map[int]string{5: "invoices/42_invoice.pdf"}}

	var doneOrders []string
	p := NewPoller(fetcher, 2*time.Second, 5,
		WithClock(clock),
		WithOnDone(func(orderID string) { doneOrders = append(doneOrders, orderID) }))

	p.Track(context.Background(), "42")

	if got := p.Status("42"); got != models.InvoiceStatusUploading {
		t.Fatalf("expected UPLOADING right after track, got %s", got)
	}

	for i := 0; i < 5; i++ {
		clock.Tick()
	}
	p.Wait()

	if got := p.Status("42"); got != models.InvoiceStatusDone {
		t.Errorf("expected DONE, got %s", got)
	}
	if got := fetcher.Attempts(); got != 5 {
		t.Errorf("expected 5 fetch attempts, got %d", got)
	}
	if len(doneOrders) != 1 || doneOrders[0] != "42" {
		t.Errorf("expected OnDone for order 42, got %v", doneOrders)
	}
}

func TestPoller_FailedAfterBudget(t *testing.T) {
	initLogger(t)

	clock := newFakeClock()
	fetcher := &fakeFetcher{}

	p := NewPoller(fetcher, 2*time.Second, 5, WithClock(clock))
	p.Track(context.Background(), "42")

	for i := 0; i < 5; i++ {
		clock.Tick()
	}
	p.Wait()

	if got := p.Status("42"); got != models.InvoiceStatusFailed {
		t.Errorf("expected FAILED, got %s", got)
	}
	// шестой попытки быть не должно
	if got := fetcher.Attempts(); got != 5 {
		t.Errorf("expected exactly 5 fetch attempts, got %d", got)
	}
}

func TestPoller_TransientErrorsConsumeBudget(t *testing.T) {
	initLogger(t)

	clock := newFakeClock()
	fetcher := &fakeFetcher{
		errAt:     map[int]error{1: errors.New("network error"), 2: errors.New("network error")},
		invoiceAt: map[int]string{3: "invoices/42_invoice.pdf"},
	}

	p := NewPoller(fetcher, 2*time.Second, 5, WithClock(clock))
	p.Track(context.Background(), "42")

	for i := 0; i < 3; i++ {
		clock.Tick()
	}
	p.Wait()

	if got := p.Status("42"); got != models.InvoiceStatusDone {
		t.Errorf("expected DONE after transient errors, got %s", got)
	}
	if got := fetcher.Attempts(); got != 3 {
		t.Errorf("expected 3 fetch attempts, got %d", got)
	}
}

func TestPoller_CancelStopsSequence(t *testing.T) {
	initLogger(t)

	clock := newFakeClock()
	fetcher := &fakeFetcher{}

	p := NewPoller(fetcher, 2*time.Second, 5, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	p.Track(ctx, "42")
	cancel()
	p.Wait()

	// после отмены статус не мутирует, заказ остаётся в UPLOADING
	if got := p.Status("42"); got != models.InvoiceStatusUploading {
		t.Errorf("expected UPLOADING after cancel, got %s", got)
	}
	if got := fetcher.Attempts(); got != 0 {
		t.Errorf("expected no fetch attempts after cancel, got %d", got)
	}
}

func TestPoller_TerminalStateIsSticky(t *testing.T) {
	initLogger(t)

	clock := newFakeClock()
	fetcher := &fakeFetcher{}

	p := NewPoller(fetcher, 2*time.Second, 1, WithClock(clock))
	p.Track(context.Background(), "42")
	clock.Tick()
	p.Wait()

	if got := p.Status("42"); got != models.InvoiceStatusFailed {
		t.Fatalf("expected FAILED, got %s", got)
	}

	// повторный Track терминального заказа игнорируется
	p.Track(context.Background(), "42")
	p.Wait()

	if got := p.Status("42"); got != models.InvoiceStatusFailed {
		t.Errorf("expected FAILED to stay, got %s", got)
	}
	if got := fetcher.Attempts(); got != 1 {
		t.Errorf("expected no extra attempts, got %d", got)
	}
}

func TestPoller_UntrackedOrderIsIdle(t *testing.T) {
	initLogger(t)

	p := NewPoller(&fakeFetcher{}, 2*time.Second, 5, WithClock(newFakeClock()))
	if got := p.Status("unknown"); got != models.InvoiceStatusIdle {
		t.Errorf("expected IDLE for untracked order, got %s", got)
	}
}
