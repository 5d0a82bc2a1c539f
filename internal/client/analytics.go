package client

import (
	"context"

	"github.com/mavdeev/salesdesk/internal/models"
)

// AnalyticsSummary - сводные показатели по заказам и товарам
func (c *Client) AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary
	if err := c.getJSON(ctx, "/analytics/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// OrdersByDay - количество заказов по дням за последнюю неделю
func (c *Client) OrdersByDay(ctx context.Context) ([]models.DailyOrders, error) {
	var series []models.DailyOrders
	if err := c.getJSON(ctx, "/analytics/orders-by-day", &series); err != nil {
		return nil, err
	}
	return series, nil
}
