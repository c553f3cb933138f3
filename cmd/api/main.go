package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cafev2/storefront-backend/api/routes"
	"github.com/cafev2/storefront-backend/internal/adminauth"
	"github.com/cafev2/storefront-backend/internal/availability"
	"github.com/cafev2/storefront-backend/internal/cart"
	"github.com/cafev2/storefront-backend/internal/checkout"
	"github.com/cafev2/storefront-backend/internal/menu"
	"github.com/cafev2/storefront-backend/internal/settings"
	"github.com/cafev2/storefront-backend/pkg/config"
	"github.com/cafev2/storefront-backend/pkg/db"
	"github.com/cafev2/storefront-backend/pkg/logger"
	"github.com/cafev2/storefront-backend/pkg/metrics"
	"github.com/cafev2/storefront-backend/pkg/migrate"
	"github.com/cafev2/storefront-backend/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	settingsService, err := settings.NewService(settings.NewRepository(dbClient.DB()), redisClient, logg, cfg.Availability)
	if err != nil {
		logg.Error(context.Background(), "failed to create settings service", err)
		os.Exit(1)
	}

	availabilityService, err := availability.NewService(availability.ServiceParams{
		Logger:   logg,
		Source:   settingsService,
		Feed:     redisClient,
		Metrics:  metrics.NewAvailabilityMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Availability.RecheckInterval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, logg, metrics.NewCartMetrics(prometheus.DefaultRegisterer))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	menuService, err := menu.NewService(menu.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create menu service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(cartService, availabilityService, logg, cfg.Business)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	adminAuthService, err := adminauth.NewService(adminauth.NewRepository(dbClient.DB()), logg, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin auth service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := availabilityService.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "availability watcher stopped unexpectedly", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config: cfg,
			Logger: logg,
			ReadyChecks: map[string]func() error{
				"database": func() error { return dbClient.Ping(context.Background()) },
				"redis":    func() error { return redisClient.Ping(context.Background()) },
			},
			Availability: availabilityService,
			Menu:         menuService,
			Cart:         cartService,
			Checkout:     checkoutService,
			Settings:     settingsService,
			AdminAuth:    adminAuthService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}
