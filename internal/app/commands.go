package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/models"
	"github.com/mavdeev/salesdesk/internal/services"
	"github.com/mavdeev/salesdesk/internal/session"
	"github.com/mavdeev/salesdesk/internal/validators"
	"github.com/shopspring/decimal"
)

// LoginCommand - аутентификация и сохранение токена
func (a *App) LoginCommand(ctx context.Context, username string, password string) error {
	if err := a.Identity.Login(ctx, username, password); err != nil {
		return err
	}
	fmt.Println("Login successful")
	return nil
}

// OrdersCommand - подкоманды работы с заказами
func (a *App) OrdersCommand(ctx context.Context, args []string) error {
	if err := a.RequireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: salesdesk orders <list|show|create|invoice|watch>")
	}

	switch args[0] {
	case "list":
		orders, err := a.Orders.GetOrders(ctx)
		if err != nil {
			return err
		}
		printOrders(orders, a.Orders)
		return nil
	case "show":
		if len(args) != 2 {
			return fmt.Errorf("usage: salesdesk orders show <id>")
		}
		order, err := a.Orders.GetOrderDetail(ctx, args[1])
		if err != nil {
			return err
		}
		printOrderDetail(order)
		return nil
	case "create":
		return a.CreateOrderCommand(ctx, args[1:])
	case "invoice":
		if len(args) != 2 {
			return fmt.Errorf("usage: salesdesk orders invoice <id>")
		}
		url, err := a.Orders.InvoiceURL(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Println(url)
		return nil
	case "watch":
		return a.WatchOrdersCommand(ctx)
	default:
		return fmt.Errorf("unknown orders command %q", args[0])
	}
}

// CreateOrderCommand - создание заказа с файлом накладной и ожиданием
// её генерации на бэкенде
func (a *App) CreateOrderCommand(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: salesdesk orders create <customer> <invoice.pdf> <productID:qty>...")
	}
	customerName, invoicePath := args[0], args[1]

	items, err := parseItems(args[2:])
	if err != nil {
		return err
	}

	invoice, err := os.Open(invoicePath)
	if err != nil {
		return fmt.Errorf("open invoice file: %w", err)
	}
	defer invoice.Close()

	orderID, err := a.Orders.CreateOrder(ctx, services.CreateOrderInput{
		CustomerName: customerName,
		Items:        items,
		InvoiceName:  invoicePath,
		Invoice:      invoice,
	})
	if err != nil {
		return err
	}
	fmt.Println("Order created:", orderID)

	fmt.Println("Invoice:", statusBadge(a.Orders.InvoiceStatus(orderID)))
	a.Poller.Wait()
	fmt.Println("Invoice:", statusBadge(a.Orders.InvoiceStatus(orderID)))

	// по готовности накладной снимок уже перечитан, показываем его
	if orders := a.Refresher.Orders(); len(orders) > 0 {
		printOrders(orders, a.Orders)
	}
	return nil
}

// WatchOrdersCommand - живой список заказов: фоновое обновление
// снимка и наблюдение за внешним сбросом сессии
func (a *App) WatchOrdersCommand(ctx context.Context) error {
	a.Refresher.Start(ctx)
	defer a.Refresher.Stop()

	watcher := session.NewWatcher(a.Store, a.Config.Poll.Interval)
	loggedOut := make(chan struct{}, 1)
	watcher.OnChange(func(authenticated bool) {
		if !authenticated {
			loggedOut <- struct{}{}
		}
	})
	watcher.Start(ctx)
	defer watcher.Stop()

	ticker := time.NewTicker(a.Config.Poll.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-loggedOut:
			// токен очищен извне, защищённый экран закрывается
			logger.Info("Session cleared externally")
			return ErrNotAuthenticated
		case <-ticker.C:
			printOrders(a.Refresher.Orders(), a.Orders)
		}
	}
}

// ProductsCommand - подкоманды администрирования каталога
func (a *App) ProductsCommand(ctx context.Context, args []string) error {
	if err := a.RequireAuth(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: salesdesk products <list|add|delete>")
	}

	switch args[0] {
	case "list":
		products, err := a.Products.GetProducts(ctx)
		if err != nil {
			return err
		}
		printProducts(products)
		return nil
	case "add":
		if len(args) != 5 {
			return fmt.Errorf("usage: salesdesk products add <name> <price> <category> <stock>")
		}
		price, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid price: %w", err)
		}
		stock, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid stock: %w", err)
		}
		product, err := a.Products.AddProduct(ctx, models.NewProductRequest{
			Name:     args[1],
			Price:    price,
			Category: args[3],
			Stock:    stock,
		})
		if err != nil {
			return err
		}
		fmt.Println("Product added:", product.ProductID)
		return nil
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: salesdesk products delete <id>")
		}
		if err := a.Products.DeleteProduct(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Product deleted")
		return nil
	default:
		return fmt.Errorf("unknown products command %q", args[0])
	}
}

// AnalyticsCommand - сводка и данные для графика заказов по дням
func (a *App) AnalyticsCommand(ctx context.Context) error {
	if err := a.RequireAuth(); err != nil {
		return err
	}

	summary, err := a.Analytics.GetSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Total orders:\t%d\nTotal products:\t%d\nOrders today:\t%d\n",
		summary.TotalOrders, summary.TotalProducts, summary.OrdersToday)

	series, synthetic, err := a.Analytics.GetOrdersByDay(ctx, summary)
	if err != nil {
		return err
	}
	if synthetic {
		fmt.Println("(orders-by-day endpoint unavailable, showing estimated series)")
	}
	for _, day := range series {
		fmt.Printf("%s\t%s\n", day.Date, strings.Repeat("█", day.Orders))
	}
	return nil
}

func parseItems(args []string) ([]validators.OrderItemInput, error) {
	items := make([]validators.OrderItemInput, 0, len(args))
	for _, arg := range args {
		productID, quantityPart, found := strings.Cut(arg, ":")
		if !found {
			return nil, fmt.Errorf("invalid item %q, expected productID:qty", arg)
		}
		quantity, err := strconv.Atoi(quantityPart)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in %q: %w", arg, err)
		}
		items = append(items, validators.OrderItemInput{ProductID: productID, Quantity: quantity})
	}
	return items, nil
}

func printOrders(orders []models.Order, ordersService services.OrdersService) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER ID\tCUSTOMER\tAMOUNT\tDATE\tINVOICE")
	for _, order := range orders {
		invoice := invoiceBadge(order, ordersService.InvoiceStatus(order.OrderID))
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			order.OrderID, order.CustomerName, order.Amount.StringFixed(2),
			order.OrderDate.Format(time.RFC3339), invoice)
	}
	w.Flush()
}

func printOrderDetail(order *models.Order) {
	fmt.Println("Order ID:", order.OrderID)
	fmt.Println("Customer:", order.CustomerName)
	fmt.Println("Amount:", order.Amount.StringFixed(2))
	fmt.Println("Date:", order.OrderDate.Format(time.RFC3339))
	if order.InvoiceURL != "" {
		fmt.Println("Invoice:", order.InvoiceURL)
	} else {
		fmt.Println("Invoice: not available")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT PRICE")
	for _, item := range order.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			item.ProductID, item.Name, item.Quantity, item.UnitPrice.StringFixed(2))
	}
	w.Flush()
}

func printProducts(products []models.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT ID\tNAME\tPRICE\tCATEGORY\tSTOCK")
	for _, product := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			product.ProductID, product.Name, product.Price.StringFixed(2),
			product.Category, product.Stock)
	}
	w.Flush()
}

// invoiceBadge - статус накладной в строке списка: приоритет у
// результата ожидания, дальше смотрим на наличие ссылки
func invoiceBadge(order models.Order, pollStatus string) string {
	switch pollStatus {
	case models.InvoiceStatusUploading:
		return "Uploading..."
	case models.InvoiceStatusDone:
		// снимок заказа мог отстать от опроса, ссылка уже есть
		return "Available"
	case models.InvoiceStatusFailed:
		return "Upload Failed"
	}
	if order.InvoiceURL != "" {
		return "Available"
	}
	return "Not available"
}

func statusBadge(status string) string {
	switch status {
	case models.InvoiceStatusUploading:
		return "Uploading..."
	case models.InvoiceStatusDone:
		return "Available"
	case models.InvoiceStatusFailed:
		return "Upload Failed"
	default:
		return "Not available"
	}
}
