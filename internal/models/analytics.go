package models

// AnalyticsSummary - сводные показатели по заказам и товарам
type AnalyticsSummary struct {
	TotalOrders   int `json:"totalOrders"`
	TotalProducts int `json:"totalProducts"`
	OrdersToday   int `json:"ordersToday"`
}

// DailyOrders - количество заказов за день для графика
type DailyOrders struct {
	Date   string `json:"date"`
	Orders int    `json:"orders"`
}
