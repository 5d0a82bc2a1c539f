package models

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Статусы ожидания накладной по заказу
const (
	InvoiceStatusIdle      = "IDLE"
	InvoiceStatusUploading = "UPLOADING"
	InvoiceStatusDone      = "DONE"
	InvoiceStatusFailed    = "FAILED"
)

// OrderItem - модель позиции заказа
type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	// Name заполняется на клиенте из каталога, бэкенд его не хранит
	Name string `json:"name,omitempty"`
}

// Order - модель заказа, приходит от бэкенда
type Order struct {
	OrderID      string          `json:"orderID"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	OrderDate    time.Time       `json:"orderDate"`
	InvoiceURL   string          `json:"invoiceUrl,omitempty"`
	Items        []OrderItem     `json:"items,omitempty"`
}

// OrderList - список заказов. Бэкенд отдаёт либо голый массив,
// либо обёртку {"orders": [...]}, разбираем оба варианта.
type OrderList struct {
	Orders []Order
}

func (l *OrderList) UnmarshalJSON(data []byte) error {
	var plain []Order
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Orders = plain
		return nil
	}
	var wrapped struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	l.Orders = wrapped.Orders
	return nil
}
