package poller

import (
	"context"
	"sync"
	"time"

	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
)

// OrderFetcher - одна операция шлюза, нужная опросу
type OrderFetcher interface {
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// Clock - абстракция таймера для детерминированных тестов
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Poller - автомат ожидания накладной по созданному заказу.
// Состояния: IDLE -> UPLOADING -> {DONE, FAILED}. DONE и FAILED
// терминальные, выхода из них для заказа в рамках одного экземпляра нет.
// Бюджет попыток и задержка фиксированы при создании; проверка бюджета
// идёт до планирования следующей попытки, так что запросов к шлюзу
// не больше бюджета.
type Poller struct {
	Fetcher  OrderFetcher
	Delay    time.Duration
	Attempts int

	clock     Clock
	onDone    func(orderID string)
	waitGroup sync.WaitGroup

	mu     sync.Mutex
	status map[string]string
}

// Option - настройка автомата опроса
type Option func(*Poller)

// WithClock - подменяет источник времени (используется в тестах)
func WithClock(clock Clock) Option {
	return func(p *Poller) { p.clock = clock }
}

// WithOnDone - колбек успешного появления накладной, владелец
// обновляет по нему список заказов
func WithOnDone(callback func(orderID string)) Option {
	return func(p *Poller) { p.onDone = callback }
}

// NewPoller - конструктор автомата ожидания накладной
func NewPoller(fetcher OrderFetcher, delay time.Duration, attempts int, opts ...Option) *Poller {
	p := &Poller{
		Fetcher:  fetcher,
		Delay:    delay,
		Attempts: attempts,
		clock:    realClock{},
		status:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status - текущий статус ожидания накладной по заказу
func (p *Poller) Status(orderID string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if status, ok := p.status[orderID]; ok {
		return status
	}
	return models.InvoiceStatusIdle
}

// Track - переводит заказ в UPLOADING и запускает последовательность
// опроса в фоне. Повторный Track по заказу в терминальном состоянии
// игнорируется.
func (p *Poller) Track(ctx context.Context, orderID string) {
	if !p.setStatus(orderID, models.InvoiceStatusUploading) {
		logger.Warn("Order already in terminal state, ignoring track:", orderID)
		return
	}

	p.waitGroup.Add(1)
	go func() {
		defer p.waitGroup.Done()
		p.run(ctx, orderID)
	}()
}

// Wait - дожидается завершения всех запущенных последовательностей
func (p *Poller) Wait() {
	p.waitGroup.Wait()
}

// run - последовательность опроса одного заказа. Одновременно в полёте
// не больше одной проверки: следующая планируется только после
// завершения предыдущей.
func (p *Poller) run(ctx context.Context, orderID string) {
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		select {
		case <-ctx.Done():
			// владелец ушёл, статус больше не трогаем
			return
		case <-p.clock.After(p.Delay):
		}

		order, err := p.Fetcher.GetOrder(ctx, orderID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// сетевые сбои съедают попытку, бюджет общий
			logger.Warn("Invoice poll attempt failed:", orderID, err)
			continue
		}
		if order.InvoiceURL == "" {
			continue
		}

		if ctx.Err() != nil {
			return
		}
		p.setStatus(orderID, models.InvoiceStatusDone)
		logger.Info("Invoice available for order:", orderID)
		if p.onDone != nil {
			p.onDone(orderID)
		}
		return
	}

	if ctx.Err() != nil {
		return
	}
	p.setStatus(orderID, models.InvoiceStatusFailed)
	logger.Warn("Invoice poll budget exhausted for order:", orderID)
}

// setStatus - смена статуса с защитой терминальных состояний
func (p *Poller) setStatus(orderID string, status string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.status[orderID]
	if current == models.InvoiceStatusDone || current == models.InvoiceStatusFailed {
		return false
	}
	p.status[orderID] = status
	return true
}
