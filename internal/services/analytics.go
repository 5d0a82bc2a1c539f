package services

import (
	"context"

	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
)

type AnalyticsService interface {
	GetSummary(ctx context.Context) (*models.AnalyticsSummary, error)
	GetOrdersByDay(ctx context.Context, summary *models.AnalyticsSummary) ([]models.DailyOrders, bool, error)
}

type Analytics struct {
	Gateway client.Gateway
}

// Создание сервиса
func NewAnalytics(gateway client.Gateway) *Analytics {
	return &Analytics{Gateway: gateway}
}

// GetSummary - сводные показатели
func (s *Analytics) GetSummary(ctx context.Context) (*models.AnalyticsSummary, error) {
	return s.Gateway.AnalyticsSummary(ctx)
}

// GetOrdersByDay - дневная статистика заказов. Если эндпоинт
// недоступен, возвращается синтетический ряд вокруг ordersToday;
// второй результат true означает синтетику.
func (s *Analytics) GetOrdersByDay(ctx context.Context, summary *models.AnalyticsSummary) ([]models.DailyOrders, bool, error) {
	series, err := s.Gateway.OrdersByDay(ctx)
	if err == nil {
		return series, false, nil
	}
	logger.Warn("Orders-by-day endpoint unavailable, using fallback series:", err)

	ordersToday := 0
	if summary != nil {
		ordersToday = summary.OrdersToday
	}
	return FallbackSeries(ordersToday), true, nil
}

// FallbackSeries - синтетический недельный ряд вокруг показателя
// "заказов сегодня", коэффициенты повторяют исходную панель
func FallbackSeries(ordersToday int) []models.DailyOrders {
	scale := func(factor float64) int {
		value := int(float64(ordersToday) * factor)
		if value < 1 {
			return 1
		}
		return value
	}

	sunday := ordersToday
	if sunday == 0 {
		sunday = 1
	}

	return []models.DailyOrders{
		{Date: "Mon", Orders: scale(0.8)},
		{Date: "Tue", Orders: scale(1.2)},
		{Date: "Wed", Orders: scale(0.6)},
		{Date: "Thu", Orders: scale(1.5)},
		{Date: "Fri", Orders: scale(0.9)},
		{Date: "Sat", Orders: scale(1.8)},
		{Date: "Sun", Orders: sunday},
	}
}
