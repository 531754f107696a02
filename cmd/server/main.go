package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutrikart/storefront/internal/catalog"
	"github.com/nutrikart/storefront/internal/config"
	"github.com/nutrikart/storefront/internal/handlers"
	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/pricing"
	"github.com/nutrikart/storefront/internal/repository"
	"github.com/nutrikart/storefront/internal/service"
	"github.com/nutrikart/storefront/internal/telemetry"
	"github.com/nutrikart/storefront/pkg/logger"
)

const tracerName = "github.com/nutrikart/storefront/cmd/server"

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdout); err != nil {
		log.Error("server exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Tracing is flushed and the cart store
// closed on every return path.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, traceOut io.Writer) error {
	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"cart_store", cfg.Cart.Store,
	)

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Options{
		ServiceName: cfg.Telemetry.ServiceName,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		Writer:      traceOut,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if flushErr := shutdownTracing(flushCtx); flushErr != nil {
			log.Error("failed to flush traces", "error", flushErr)
		}
	}()

	// Load catalog
	cat, err := loadCatalog(ctx, cfg.Catalog.Sources)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Info("catalog loaded successfully",
		"sources", len(cfg.Catalog.Sources),
		"categories", len(cat.Categories),
		"products", len(cat.Products),
	)

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository(cat.Products)
	categoryRepo := repository.NewInMemoryCategoryRepository(cat.Categories)
	orderRepo := repository.NewInMemoryOrderRepository(repository.DemoOrders())
	accountRepo := repository.NewInMemoryAccountRepository(repository.DemoProfile(), repository.DefaultSettings())

	cartRepo, closeCarts, err := newCartRepository(ctx, cfg.Cart)
	if err != nil {
		return fmt.Errorf("failed to initialize %s cart store: %w", cfg.Cart.Store, err)
	}
	defer closeCarts()

	// Initialize services
	calc := pricing.NewCalculator(pricing.ShippingPolicy{
		FreeThreshold: cfg.Shipping.FreeThreshold,
		FlatFee:       cfg.Shipping.FlatFee,
	})
	productService := service.NewProductService(productRepo, categoryRepo)
	cartService := service.NewCartService(cartRepo, productRepo, calc, log)

	router := handlers.NewRouter(handlers.Services{
		Products:   productService,
		Categories: service.NewCategoryService(categoryRepo, productService),
		Carts:      cartService,
		Orders:     service.NewOrderService(orderRepo, cartService),
		Accounts:   service.NewAccountService(accountRepo),
	}, handlers.RouterOptions{
		ServiceName:    cfg.Telemetry.ServiceName,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CatalogSize:    productRepo.Len,
	}, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Wait for interrupt signal or a listener failure
	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadCatalog reads the configured sources, or the embedded catalog when none are set
func loadCatalog(ctx context.Context, sources []string) (models.Catalog, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.load",
		trace.WithAttributes(attribute.Int("catalog.sources", len(sources))),
	)
	defer span.End()

	var (
		cat models.Catalog
		err error
	)
	if len(sources) == 0 {
		cat, err = catalog.LoadDefault()
	} else {
		cat, err = catalog.NewLoader().Load(ctx, sources)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return models.Catalog{}, err
	}
	span.SetAttributes(attribute.Int("catalog.products", len(cat.Products)))
	return cat, nil
}

// newCartRepository builds the configured cart store and its cleanup func
func newCartRepository(ctx context.Context, cfg config.CartConfig) (repository.CartRepository, func(), error) {
	if cfg.Store != config.CartStoreRedis {
		return repository.NewInMemoryCartRepository(), func() {}, nil
	}

	repo, err := repository.NewRedisCartRepository(ctx, cfg.RedisURL, cfg.TTL)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { _ = repo.Close() }, nil
}
