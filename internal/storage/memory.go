package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mavdeev/salesdesk/internal/models"
)

// MemoryOrders - заказы в памяти процесса
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]models.Order)}
}

func (s *MemoryOrders) AddOrder(_ context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.OrderID] = order
	return nil
}

func (s *MemoryOrders) GetOrder(_ context.Context, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %w", ErrNotFound)
	}
	return &order, nil
}

func (s *MemoryOrders) GetOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	// свежие заказы сверху
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (s *MemoryOrders) SetInvoiceURL(_ context.Context, orderID string, invoiceURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %w", ErrNotFound)
	}
	order.InvoiceURL = invoiceURL
	s.orders[orderID] = order
	return nil
}

// MemoryProducts - каталог в памяти процесса
type MemoryProducts struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{products: make(map[string]models.Product)}
}

func (s *MemoryProducts) AddProduct(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
	return nil
}

func (s *MemoryProducts) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}
	return &product, nil
}

func (s *MemoryProducts) GetProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (s *MemoryProducts) DeleteProduct(_ context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return fmt.Errorf("product %w", ErrNotFound)
	}
	delete(s.products, productID)
	return nil
}
