package services

import (
	"context"
	"errors"
	"io"

	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/mavdeev/salesdesk/internal/poller"
	"github.com/mavdeev/salesdesk/internal/validators"
	"github.com/shopspring/decimal"
)

var ErrUnknownProduct = errors.New("unknown product in order")

type OrdersService interface {
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrderDetail(ctx context.Context, orderID string) (*models.Order, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (string, error)
	InvoiceURL(ctx context.Context, orderID string) (string, error)
	InvoiceStatus(orderID string) string
}

// CreateOrderInput - форма создания заказа
type CreateOrderInput struct {
	CustomerName string
	Items        []validators.OrderItemInput
	InvoiceName  string
	Invoice      io.Reader
}

type Orders struct {
	Gateway client.Gateway
	Poller  *poller.Poller
}

// Создание сервиса
func NewOrders(gateway client.Gateway, invoicePoller *poller.Poller) *Orders {
	return &Orders{Gateway: gateway, Poller: invoicePoller}
}

// GetOrders - список заказов
func (s *Orders) GetOrders(ctx context.Context) ([]models.Order, error) {
	return s.Gateway.ListOrders(ctx)
}

// GetOrderDetail - заказ с позициями, обогащёнными названием и ценой
// товара из каталога
func (s *Orders) GetOrderDetail(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.Gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for i, item := range order.Items {
		if item.ProductID == "" {
			continue
		}
		product, err := s.Gateway.GetProduct(ctx, item.ProductID)
		if err != nil {
			// товар могли удалить после оформления заказа
			logger.Warn("Failed to enrich order item:", item.ProductID, err)
			order.Items[i].Name = "Unnamed"
			continue
		}
		order.Items[i].Name = product.Name
		order.Items[i].UnitPrice = product.Price
	}
	return order, nil
}

// CreateOrder - проверяет форму, обогащает позиции ценами каталога на
// момент оформления, считает итог и отправляет заказ. После успешного
// создания запускает ожидание накладной.
func (s *Orders) CreateOrder(ctx context.Context, input CreateOrderInput) (string, error) {
	if err := validators.CheckOrderInput(input.CustomerName, input.Items, input.Invoice != nil); err != nil {
		return "", err
	}

	products, err := s.Gateway.ListProducts(ctx)
	if err != nil {
		logger.Error("Failed to load products:", err)
		return "", err
	}
	catalog := make(map[string]models.Product, len(products))
	for _, product := range products {
		catalog[product.ProductID] = product
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			return "", ErrUnknownProduct
		}
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	orderID, err := s.Gateway.CreateOrder(ctx, client.CreateOrderRequest{
		CustomerName: input.CustomerName,
		Amount:       ComputeTotal(items),
		Items:        items,
		InvoiceName:  input.InvoiceName,
		Invoice:      input.Invoice,
	})
	if err != nil {
		logger.Error("Failed to create order:", err)
		return "", err
	}
	logger.Info("Order created:", orderID)

	// накладная генерируется асинхронно, ждём её появления в фоне
	if s.Poller != nil {
		s.Poller.Track(ctx, orderID)
	}
	return orderID, nil
}

// InvoiceURL - ссылка на накладную заказа
func (s *Orders) InvoiceURL(ctx context.Context, orderID string) (string, error) {
	return s.Gateway.InvoiceURL(ctx, orderID)
}

// InvoiceStatus - статус ожидания накладной
func (s *Orders) InvoiceStatus(orderID string) string {
	if s.Poller == nil {
		return models.InvoiceStatusIdle
	}
	return s.Poller.Status(orderID)
}

// ComputeTotal - сумма заказа: Σ количество × цена позиции
func ComputeTotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
