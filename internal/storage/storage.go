package storage

import (
	"context"
	"errors"

	"github.com/mavdeev/salesdesk/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
)

// OrdersStorage - хранилище заказов локальной заглушки бэкенда
type OrdersStorage interface {
	AddOrder(ctx context.Context, order models.Order) error
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	SetInvoiceURL(ctx context.Context, orderID string, invoiceURL string) error
}

// ProductsStorage - хранилище каталога локальной заглушки бэкенда
type ProductsStorage interface {
	AddProduct(ctx context.Context, product models.Product) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type Storage struct {
	Orders   OrdersStorage
	Products ProductsStorage
}

// Создание хранилища
func NewStorage() Storage {
	return Storage{Orders: NewMemoryOrders(), Products: NewMemoryProducts()}
}
