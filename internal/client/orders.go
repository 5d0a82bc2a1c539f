package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest - модель запроса создания заказа с файлом накладной
type CreateOrderRequest struct {
	CustomerName string
	Amount       decimal.Decimal
	Items        []models.OrderItem
	InvoiceName  string
	Invoice      io.Reader
}

// ListOrders - список заказов
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var list models.OrderList
	if err := c.getJSON(ctx, "/orders", &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// GetOrder - заказ по идентификатору
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := c.getJSON(ctx, "/orders/"+orderID, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder - создаёт заказ multipart-запросом: поля формы
// customerName, amount, items (JSON) и файл накладной. Возвращает
// идентификатор созданного заказа.
func (c *Client) CreateOrder(ctx context.Context, request CreateOrderRequest) (string, error) {
	// бэкенд хранит в позициях только идентификатор, количество и цену
	items := make([]models.OrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	if err := form.WriteField("customerName", request.CustomerName); err != nil {
		return "", err
	}
	if err := form.WriteField("amount", request.Amount.String()); err != nil {
		return "", err
	}
	if err := form.WriteField("items", string(itemsJSON)); err != nil {
		return "", err
	}
	part, err := form.CreateFormFile("invoice", request.InvoiceName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, request.Invoice); err != nil {
		return "", errors.Wrap(err, "write invoice part")
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/orders", form.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	orderID, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(orderID)), nil
}

// InvoiceURL - ссылка на сгенерированную накладную заказа
func (c *Client) InvoiceURL(ctx context.Context, orderID string) (string, error) {
	return c.getText(ctx, "/orders/"+orderID+"/invoice-url")
}
