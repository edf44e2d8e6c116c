package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/api"
	cartcontrollers "github.com/angelmondragon/storefront-backend/api/controllers/cart"
	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/catalog"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/notifications"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/profiles"
	"github.com/angelmondragon/storefront-backend/internal/tenants"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
	"github.com/angelmondragon/storefront-backend/pkg/whatsapp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	services, err := buildServices(cfg, logg, dbClient, redisClient, storefrontMetrics)
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		_ = multierr.Combine(redisClient.Close(), dbClient.Close())
		os.Exit(1)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.App.Port = port
	}
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	server := api.NewServer(cfg, routes.NewRouter(cfg, logg, dbClient, redisClient, metricsHandler, services))

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": server.Addr,
	})
	logg.Info(ctx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	closeErr := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(shutdownCtx, "error during shutdown", closeErr)
		exitCode = 1
	}
	os.Exit(exitCode)
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, m *metrics.StorefrontMetrics) (routes.Services, error) {
	conn := dbClient.DB()

	profileRepo := profiles.NewRepository(conn)
	profileService, err := profiles.NewService(profileRepo)
	if err != nil {
		return routes.Services{}, err
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(conn), dbClient, catalog.WithDemoLifetime(cfg.Demo.ProductTTL))
	if err != nil {
		return routes.Services{}, err
	}

	tenantService, err := tenants.NewService(tenants.ServiceParams{
		Repo:         tenants.NewRepository(conn),
		Profiles:     profileRepo,
		Catalog:      catalogService,
		Tx:           dbClient,
		Logger:       logg,
		SkipDemoSeed: !cfg.FeatureFlags.SeedDemoData,
	})
	if err != nil {
		return routes.Services{}, err
	}

	numbers, err := orders.NewRedisNumbers(redisClient)
	if err != nil {
		return routes.Services{}, err
	}
	waClient := whatsapp.NewClient(
		cfg.WhatsApp.PhoneNumberID,
		cfg.WhatsApp.AccessToken,
		whatsapp.WithBaseURL(cfg.WhatsApp.BaseURL),
		whatsapp.WithTimeout(cfg.WhatsApp.Timeout),
	)
	if !waClient.Configured() {
		logg.Warn(context.Background(), "whatsapp credentials missing, order notifications disabled")
	}
	notifier, err := notifications.NewOrderNotifier(waClient, m, logg)
	if err != nil {
		return routes.Services{}, err
	}
	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orders.NewRepository(conn),
		Tx:       dbClient,
		Numbers:  numbers,
		Notifier: notifier,
		Metrics:  m,
		Logger:   logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	cartKV, err := cart.NewRedisKV(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		return routes.Services{}, err
	}
	sessions, err := cart.NewSessions(cartKV, cfg.Cart.StorageKey, logg,
		cart.WithSessionLocks(redisClient, cfg.Cart.LockTTL, cfg.Cart.LockWait))
	if err != nil {
		return routes.Services{}, err
	}

	creator, err := orderCreator(cfg, orderService)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Tenants:  tenantService,
		Catalog:  catalogService,
		Orders:   orderService,
		Profiles: profileService,
		Carts:    sessions,
		Checkout: cartcontrollers.CheckoutDeps{
			Creator: creator,
			Locks:   redisClient,
			LockTTL: cfg.Checkout.InFlightTTL,
			Metrics: m,
		},
	}, nil
}

// orderCreator submits cart checkouts in-process unless a remote order API is configured.
func orderCreator(cfg *config.Config, svc orders.Service) (checkout.OrderCreator, error) {
	if cfg.Checkout.OrderAPIURL == "" {
		local, err := checkout.NewLocalOrderCreator(svc)
		if err != nil {
			return nil, err
		}
		return local, nil
	}
	remote, err := checkout.NewHTTPOrderClient(
		cfg.Checkout.OrderAPIURL,
		checkout.WithHTTPClient(&http.Client{Timeout: cfg.Checkout.OrderTimeout}),
		checkout.WithIdempotencyKeys(uuid.NewString),
	)
	if err != nil {
		return nil, err
	}
	return remote, nil
}
