package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/javiortega/techdepot-backend/api/routes"
	"github.com/javiortega/techdepot-backend/internal/addresses"
	"github.com/javiortega/techdepot-backend/internal/auth"
	"github.com/javiortega/techdepot-backend/internal/basket"
	"github.com/javiortega/techdepot-backend/internal/cards"
	"github.com/javiortega/techdepot-backend/internal/catalog"
	checkoutsvc "github.com/javiortega/techdepot-backend/internal/checkout"
	"github.com/javiortega/techdepot-backend/internal/customers"
	"github.com/javiortega/techdepot-backend/internal/orders"
	"github.com/javiortega/techdepot-backend/internal/statistics"
	"github.com/javiortega/techdepot-backend/pkg/auth/session"
	"github.com/javiortega/techdepot-backend/pkg/config"
	"github.com/javiortega/techdepot-backend/pkg/db"
	"github.com/javiortega/techdepot-backend/pkg/env"
	"github.com/javiortega/techdepot-backend/pkg/logger"
	"github.com/javiortega/techdepot-backend/pkg/metrics"
	"github.com/javiortega/techdepot-backend/pkg/migrate"
	"github.com/javiortega/techdepot-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	ctx := context.Background()

	dbClient, err := openDatabase(ctx, cfg, logg)
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
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	svcs, err := buildServices(cfg, dbClient, sessionManager, checkoutMetrics)
	if err != nil {
		logg.Error(ctx, "failed to wire services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}

	if err := multierr.Combine(redisClient.Close(), dbClient.Close()); err != nil {
		logg.Error(ctx, "error closing resources", err)
	}
}

func openDatabase(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	if cfg.FeatureFlags.UseSQLite {
		return db.NewSQLite(ctx, env.Get("TECHDEPOT_SQLITE_DSN", ""), logg)
	}
	return db.New(ctx, cfg.DB, logg)
}

func buildServices(
	cfg *config.Config,
	dbClient *db.Client,
	sessionManager *session.Manager,
	checkoutMetrics *metrics.CheckoutMetrics,
) (routes.Services, error) {
	conn := dbClient.DB()

	customerRepo := customers.NewRepository(conn)
	catalogRepo := catalog.NewRepository(conn)
	basketRepo := basket.NewRepository(conn)
	checkoutRepo := checkoutsvc.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	addressesRepo := addresses.NewRepository(conn)
	cardsRepo := cards.NewRepository(conn)
	statsRepo := statistics.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		CustomerRepo:   customerRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Services{}, err
	}

	customersService, err := customers.NewService(customerRepo, cfg.Store)
	if err != nil {
		return routes.Services{}, err
	}

	catalogService, err := catalog.NewService(catalogRepo, cfg.Store)
	if err != nil {
		return routes.Services{}, err
	}

	basketService, err := basket.NewService(basketRepo, dbClient, catalogRepo, catalogService)
	if err != nil {
		return routes.Services{}, err
	}

	addressesService, err := addresses.NewService(addressesRepo)
	if err != nil {
		return routes.Services{}, err
	}

	cardsService, err := cards.NewService(cardsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	checkoutService, err := checkoutsvc.NewService(
		checkoutRepo,
		basketRepo,
		catalogRepo,
		dbClient,
		addressesService,
		cardsService,
		cfg.Store,
		checkoutMetrics,
	)
	if err != nil {
		return routes.Services{}, err
	}

	ordersService, err := orders.NewService(ordersRepo)
	if err != nil {
		return routes.Services{}, err
	}

	statisticsService, err := statistics.NewService(statsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authService,
		Customers:  customersService,
		Catalog:    catalogService,
		Basket:     basketService,
		Checkout:   checkoutService,
		Orders:     ordersService,
		Addresses:  addressesService,
		Cards:      cardsService,
		Statistics: statisticsService,
	}, nil
}
