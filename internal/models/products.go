package models

import "github.com/shopspring/decimal"

// Product - модель товара из каталога
type Product struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
}

// NewProductRequest - модель запроса добавления товара, идентификатор назначает бэкенд
type NewProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
}
