package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mavdeev/salesdesk/internal/client"
	"github.com/mavdeev/salesdesk/internal/config"
	"github.com/mavdeev/salesdesk/internal/devserver"
	"github.com/mavdeev/salesdesk/internal/logger"
	"github.com/mavdeev/salesdesk/internal/poller"
	"github.com/mavdeev/salesdesk/internal/services"
	"github.com/mavdeev/salesdesk/internal/session"
	"github.com/mavdeev/salesdesk/internal/worker"
	"github.com/spf13/pflag"
)

var ErrNotAuthenticated = errors.New("not logged in, run 'salesdesk login <username> <password>'")

const usage = `usage: salesdesk <command>

commands:
  login <username> <password>            authenticate and store the token
  logout                                 clear the stored token
  orders list                            list orders
  orders show <id>                       order detail with item names
  orders create <customer> <invoice.pdf> <productID:qty>...
                                         create an order and wait for the invoice
  orders invoice <id>                    print the invoice download URL
  orders watch                           keep the order list on screen, auto-refreshing
  products list                          list catalog
  products add <name> <price> <category> <stock>
  products delete <id>                   remove a product
  analytics                              summary and orders-by-day chart data
  devserver                              run a local stub of the order service`

// App - собранное приложение: сессия, шлюз и сервисы поверх него
type App struct {
	Config    config.Config
	Session   *session.Session
	Store     session.TokenStore
	Identity  services.IdentityService
	Orders    services.OrdersService
	Products  services.ProductsService
	Analytics services.AnalyticsService
	Poller    *poller.Poller
	Refresher *worker.RefreshWorker
	Gateway   client.Gateway
}

// NewApp - сборка приложения поверх конфигурации
func NewApp(cfg config.Config) *App {
	store := session.NewFileStore(cfg.Client.TokenFile)
	sess := session.NewSession(store)
	gateway := client.NewClient(
		cfg.Client.APIBaseURL,
		&http.Client{Timeout: cfg.Client.RequestTimeout},
		sess,
	)
	// по готовности накладной обновляем снимок списка заказов, его
	// читают экран наблюдения и команда создания заказа
	refresher := worker.NewRefreshWorker(gateway, cfg.Poll.Interval)
	invoicePoller := poller.NewPoller(gateway, cfg.Poll.Interval, cfg.Poll.Attempts,
		poller.WithOnDone(func(orderID string) {
			refreshCtx, cancel := context.WithTimeout(context.Background(), cfg.Client.RequestTimeout)
			defer cancel()
			refresher.Refresh(refreshCtx)
		}))

	return &App{
		Config:    cfg,
		Session:   sess,
		Store:     store,
		Identity:  services.NewIdentity(gateway, sess),
		Orders:    services.NewOrders(gateway, invoicePoller),
		Products:  services.NewProducts(gateway),
		Analytics: services.NewAnalytics(gateway),
		Poller:    invoicePoller,
		Refresher: refresher,
		Gateway:   gateway,
	}
}

// Run - разбор команды и её выполнение
func Run(cfg config.Config) error {
	args := pflag.Args()
	if len(args) == 0 {
		fmt.Println(usage)
		return nil
	}

	if args[0] == "devserver" {
		return RunDevServer(cfg)
	}

	app := NewApp(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: salesdesk login <username> <password>")
		}
		return app.LoginCommand(ctx, args[1], args[2])
	case "logout":
		return app.Identity.Logout()
	case "orders":
		return app.OrdersCommand(ctx, args[1:])
	case "products":
		return app.ProductsCommand(ctx, args[1:])
	case "analytics":
		return app.AnalyticsCommand(ctx)
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// RequireAuth - аналог редиректа на страницу логина: защищённые
// команды без сохранённого токена не выполняются
func (a *App) RequireAuth() error {
	if !a.Session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// RunDevServer - запуск локальной заглушки бэкенда с корректным завершением
func RunDevServer(cfg config.Config) error {
	stub, err := devserver.NewServer(cfg.Dev, cfg.Poll.Interval*2)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Dev.ListenAddr,
		Handler: stub.HandleRouter(),
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting devserver on", cfg.Dev.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown devserver")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Devserver stopped")
	return nil
}
