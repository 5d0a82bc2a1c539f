package validators

import (
	"errors"

	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrNoItems              = errors.New("order must contain at least one item")
	ErrProductRequired      = errors.New("item must reference a product")
	ErrInvalidQuantity      = errors.New("item quantity must be at least 1")
	ErrInvoiceRequired      = errors.New("invoice file is required")
	ErrProductNameRequired  = errors.New("product name is required")
	ErrCategoryRequired     = errors.New("product category is required")
	ErrNegativePrice        = errors.New("product price must not be negative")
	ErrNegativeStock        = errors.New("product stock must not be negative")
)

// OrderItemInput - позиция заказа до обогащения ценой из каталога
type OrderItemInput struct {
	ProductID string
	Quantity  int
}

// CheckOrderInput - проверка обязательных полей формы заказа,
// выполняется до любого сетевого запроса
func CheckOrderInput(customerName string, items []OrderItemInput, hasInvoice bool) error {
	if customerName == "" {
		return ErrCustomerNameRequired
	}
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, item := range items {
		if item.ProductID == "" {
			return ErrProductRequired
		}
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	if !hasInvoice {
		return ErrInvoiceRequired
	}
	return nil
}

// CheckNewProduct - проверка обязательных полей формы товара
func CheckNewProduct(request models.NewProductRequest) error {
	if request.Name == "" {
		return ErrProductNameRequired
	}
	if request.Category == "" {
		return ErrCategoryRequired
	}
	if request.Price.LessThan(decimal.Zero) {
		return ErrNegativePrice
	}
	if request.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
