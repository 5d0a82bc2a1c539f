package client

import (
	"context"
	"net/http"

	"github.com/mavdeev/salesdesk/internal/models"
)

// ListProducts - каталог товаров
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct - товар по идентификатору
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON(ctx, "/products/"+productID, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct - добавляет товар в каталог
func (c *Client) CreateProduct(ctx context.Context, request models.NewProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.postJSON(ctx, "/products", request, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct - удаляет товар из каталога
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+productID, "", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
