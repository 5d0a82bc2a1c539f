package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenSource - источник актуального токена доступа (сессия)
type TokenSource interface {
	Token() string
}

// Gateway - операции клиента к бэкенду заказов. На этом уровне
// ретраев нет: политика повторов - забота вызывающего.
type Gateway interface {
	Login(ctx context.Context, username string, password string) (string, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	CreateOrder(ctx context.Context, request CreateOrderRequest) (string, error)
	InvoiceURL(ctx context.Context, orderID string) (string, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	CreateProduct(ctx context.Context, request models.NewProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error)
	OrdersByDay(ctx context.Context) ([]models.DailyOrders, error)
}

type Client struct {
	baseURL    string
	httpClient HTTPClient
	tokens     TokenSource
	limiter    *RateLimiter
}

var _ Gateway = (*Client)(nil)

// NewClient - конструктор клиента к бэкенду заказов
func NewClient(baseURL string, httpClient HTTPClient, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    NewRateLimiter(),
	}
}

// newRequest - собирает запрос, добавляя bearer-токен при его наличии
func (c *Client) newRequest(ctx context.Context, method string, path string, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do - выполняет запрос и проверяет статус ответа. Тело ответа
// закрывает вызывающий.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer resp.Body.Close()
		respErr := HandleErrorResponse(resp)
		if rateLimitErr, ok := respErr.(*RateLimitError); ok {
			logger.Warn("Too many requests to order service, blocking for", rateLimitErr.RetryAfter)
			c.limiter.BlockFor(rateLimitErr.RetryAfter)
		}
		return nil, respErr
	}
	return resp, nil
}

// getJSON - GET с разбором JSON-ответа
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}

// postJSON - POST со структурным телом и разбором JSON-ответа (out может быть nil)
func (c *Client) postJSON(ctx context.Context, path string, in interface{}, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// getText - GET с текстовым ответом (ссылки на накладные и т.п.)
func (c *Client) getText(ctx context.Context, path string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
