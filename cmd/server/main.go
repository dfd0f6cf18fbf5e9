package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tdpro/backend/config"
	"github.com/tdpro/backend/internal/catalog"
	httpDelivery "github.com/tdpro/backend/internal/delivery/http"
	"github.com/tdpro/backend/internal/domain"
	"github.com/tdpro/backend/internal/infrastructure/events"
	"github.com/tdpro/backend/internal/infrastructure/logging"
	"github.com/tdpro/backend/internal/infrastructure/metrics"
	"github.com/tdpro/backend/internal/infrastructure/receipt"
	"github.com/tdpro/backend/internal/infrastructure/storage"
	"github.com/tdpro/backend/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting TD Pro backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Type),
		zap.Duration("storage_ttl", cfg.Storage.TTL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	store, err := storage.Open(ctx, storage.Options{
		Type:     cfg.Storage.Type,
		Dir:      cfg.Storage.Dir,
		RedisURL: cfg.Storage.RedisURL,
		TTL:      cfg.Storage.TTL,
	})
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	broadcaster := events.NewBroadcaster(logger.Named("events"))
	m := metrics.New()

	var sender domain.ReceiptSender
	if cfg.Receipt.ForwardURL != "" {
		sender = receipt.NewClient(cfg.Receipt.ForwardURL, cfg.Receipt.Timeout, logger)
		logger.Info("receipt forwarding enabled", zap.String("url", cfg.Receipt.ForwardURL))
	} else {
		logger.Warn("receipt forwarding disabled, receipts are returned only")
	}

	// Initialize usecase layer
	index := catalog.Default()
	carts := usecase.NewCartStore(store, index, broadcaster, m, logger.Named("cart"))
	prefs := usecase.NewPreferencesService(store, broadcaster, cfg.Pricing.DefaultRegion, logger.Named("preferences"))
	recommendations := usecase.NewRecommendationService(carts, prefs, m)
	checkout := usecase.NewCheckoutService(carts, sender, usecase.CheckoutConfig{
		TaxRate:      cfg.Pricing.TaxRate,
		FlatShipping: cfg.Pricing.FlatShipping,
	}, m, logger.Named("checkout"))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(httpDelivery.Dependencies{
		Catalog:         index,
		Carts:           carts,
		Preferences:     prefs,
		Recommendations: recommendations,
		Checkout:        checkout,
		Events:          broadcaster,
		Metrics:         m,
		Logger:          logger.Named("http"),
	})

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
