package worker

import (
	"context"
	"sync"
	"time"

	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker"
)

// OrdersLister - операция шлюза, нужная фоновому обновлению списка
type OrdersLister interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

func InitCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "order-service",
		Timeout: 30 * time.Second, // через 30 сек пробуем подключиться
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// 5 подряд неудачных обновлений
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("Circuit Breaker", name, from.String(), "→", to.String())
		},
	})
}

// RefreshWorker - фоновый воркер обновления списка заказов, пока
// открыта панель. Держит последний успешно полученный снимок.
type RefreshWorker struct {
	Gateway      OrdersLister
	Breaker      *gobreaker.CircuitBreaker
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	PollInterval time.Duration
	RetryDelay   time.Duration

	mu     sync.Mutex
	orders []models.Order
}

// NewRefreshWorker - конструктор воркера обновления заказов
func NewRefreshWorker(gateway OrdersLister, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		Gateway:      gateway,
		Breaker:      InitCircuitBreaker(),
		QuitChan:     make(chan struct{}),
		PollInterval: interval,
		RetryDelay:   500 * time.Millisecond,
	}
}

// Start - запускает воркер в фоне
func (w *RefreshWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *RefreshWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *RefreshWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("RefreshWorker signal stop")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Refresh(ctx)
		}
	}
}

// Refresh - одно обновление снимка заказов. Кратковременные сбои
// гасятся парой повторов, устойчивые - размыкают breaker.
func (w *RefreshWorker) Refresh(ctx context.Context) {
	if w.Breaker.State() == gobreaker.StateOpen {
		logger.Warn(w.Breaker.Name(), "unavailable. Waiting...")
		return
	}

	result, err := w.Breaker.Execute(func() (interface{}, error) {
		var orders []models.Order
		backoff := retry.WithMaxRetries(2, retry.NewConstant(w.RetryDelay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			listed, err := w.Gateway.ListOrders(ctx)
			if err != nil {
				return retry.RetryableError(err)
			}
			orders = listed
			return nil
		})
		return orders, err
	})

	if err != nil {
		logger.Error("Error refreshing orders", err)
		return
	}

	w.mu.Lock()
	w.orders = result.([]models.Order)
	w.mu.Unlock()
}

// Orders - последний успешно полученный снимок списка заказов
func (w *RefreshWorker) Orders() []models.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orders
}
