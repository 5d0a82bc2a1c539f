package devserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mavdeev/salesdesk/internal/helpers"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/mavdeev/salesdesk/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LoginHandler — аутентификация, выдаёт JWT токен
func (s *Server) LoginHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("Invalid body:", zap.Error(err))
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}

		if !s.Authenticate(request.Username, request.Password) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := s.GenerateJWT(request.Username)
		if err != nil {
			logger.Error("Failed to generate token:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, models.AuthResponse{Token: token})
	})
}

// CreateOrderHandler — приём multipart-заказа с файлом накладной.
// Накладная "генерируется" асинхронно: ссылка появляется у заказа
// спустя InvoiceDelay, как у настоящего бэкенда.
func (s *Server) CreateOrderHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := helpers.GetUsername(r.Context())
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			logger.Warn("Invalid multipart form:", zap.Error(err))
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		customerName := r.FormValue("customerName")
		if customerName == "" {
			http.Error(w, "customerName is required", http.StatusBadRequest)
			return
		}
		amount, err := decimal.NewFromString(r.FormValue("amount"))
		if err != nil {
			http.Error(w, "Invalid amount", http.StatusBadRequest)
			return
		}
		var items []models.OrderItem
		if err := json.Unmarshal([]byte(r.FormValue("items")), &items); err != nil {
			http.Error(w, "Invalid items", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("invoice")
		if err != nil {
			http.Error(w, "invoice file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		orderID := uuid.NewString()
		order := models.Order{
			OrderID:      orderID,
			CustomerName: customerName,
			Amount:       amount,
			OrderDate:    time.Now(),
			Items:        items,
		}
		if err := s.Storage.Orders.AddOrder(r.Context(), order); err != nil {
			logger.Error("Failed to add order:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		logger.Info("Order created by", username, ":", orderID)

		invoiceKey := "invoices/" + orderID + "_" + sanitizeFilename(header.Filename)
		time.AfterFunc(s.InvoiceDelay, func() {
			if err := s.Storage.Orders.SetInvoiceURL(context.Background(), orderID, invoiceKey); err != nil {
				logger.Error("Failed to publish invoice:", zap.Error(err))
			}
		})

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(orderID)); err != nil {
			logger.Error("Failed to write response:", zap.Error(err))
		}
	})
}

// GetOrdersHandler — список заказов
func (s *Server) GetOrdersHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.Storage.Orders.GetOrders(r.Context())
		if err != nil {
			logger.Error("Failed to get orders:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, orders)
	})
}

// GetOrderHandler — заказ по идентификатору
func (s *Server) GetOrderHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order, err := s.Storage.Orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Order not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, order)
	})
}

// InvoiceURLHandler — ссылка на накладную, 404 пока её нет
func (s *Server) InvoiceURLHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order, err := s.Storage.Orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
		if err != nil || order.InvoiceURL == "" {
			http.Error(w, "Invoice not found", http.StatusNotFound)
			return
		}
		if _, err := w.Write([]byte("https://files.devserver.local/" + order.InvoiceURL)); err != nil {
			logger.Error("Failed to write response:", zap.Error(err))
		}
	})
}

// GetProductsHandler — каталог товаров
func (s *Server) GetProductsHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		products, err := s.Storage.Products.GetProducts(r.Context())
		if err != nil {
			logger.Error("Failed to get products:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, products)
	})
}

// GetProductHandler — товар по идентификатору
func (s *Server) GetProductHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		product, err := s.Storage.Products.GetProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, product)
	})
}

// CreateProductHandler — добавление товара в каталог
func (s *Server) CreateProductHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request models.NewProductRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			http.Error(w, "Invalid body format", http.StatusBadRequest)
			return
		}
		product := models.Product{
			ProductID: uuid.NewString(),
			Name:      request.Name,
			Price:     request.Price,
			Category:  request.Category,
			Stock:     request.Stock,
		}
		if err := s.Storage.Products.AddProduct(r.Context(), product); err != nil {
			logger.Error("Failed to add product:", zap.Error(err))
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, product)
	})
}

// DeleteProductHandler — удаление товара
func (s *Server) DeleteProductHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.Storage.Products.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// SummaryHandler — сводные показатели
func (s *Server) SummaryHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.Storage.Orders.GetOrders(r.Context())
		if err != nil {
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
		products, err := s.Storage.Products.GetProducts(r.Context())
		if err != nil {
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		today := time.Now()
		ordersToday := 0
		for _, order := range orders {
			if sameDay(order.OrderDate, today) {
				ordersToday++
			}
		}
		writeJSON(w, models.AnalyticsSummary{
			TotalOrders:   len(orders),
			TotalProducts: len(products),
			OrdersToday:   ordersToday,
		})
	})
}

// OrdersByDayHandler — количество заказов за последние 7 дней
func (s *Server) OrdersByDayHandler() http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orders, err := s.Storage.Orders.GetOrders(r.Context())
		if err != nil {
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}

		today := time.Now()
		series := make([]models.DailyOrders, 0, 7)
		for i := 6; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			count := 0
			for _, order := range orders {
				if sameDay(order.OrderDate, day) {
					count++
				}
			}
			series = append(series, models.DailyOrders{
				Date:   day.Format("2006-01-02"),
				Orders: count,
			})
		}
		writeJSON(w, series)
	})
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		logger.Error("Failed to encode JSON response:", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "invoice.pdf"
	}
	return strings.Join(strings.Fields(name), "_")
}

func sameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
