package services

import (
	"context"

	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/mavdeev/salesdesk/internal/validators"
)

type ProductsService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	AddProduct(ctx context.Context, request models.NewProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type Products struct {
	Gateway client.Gateway
}

// Создание сервиса
func NewProducts(gateway client.Gateway) *Products {
	return &Products{Gateway: gateway}
}

// GetProducts - каталог товаров
func (s *Products) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Gateway.ListProducts(ctx)
}

// AddProduct - проверяет форму и добавляет товар в каталог
func (s *Products) AddProduct(ctx context.Context, request models.NewProductRequest) (*models.Product, error) {
	if err := validators.CheckNewProduct(request); err != nil {
		return nil, err
	}

	product, err := s.Gateway.CreateProduct(ctx, request)
	if err != nil {
		logger.Error("Failed to add product:", err)
		return nil, err
	}
	logger.Info("Product added:", product.ProductID)
	return product, nil
}

// DeleteProduct - удаляет товар из каталога
func (s *Products) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.Gateway.DeleteProduct(ctx, productID); err != nil {
		logger.Error("Failed to delete product:", productID, err)
		return err
	}
	logger.Info("Product deleted:", productID)
	return nil
}
