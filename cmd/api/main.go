package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-eats/internal/cache"
	"campus-eats/internal/catalog"
	"campus-eats/internal/config"
	"campus-eats/internal/database"
	"campus-eats/internal/directory"
	"campus-eats/internal/events"
	"campus-eats/internal/handler"
	"campus-eats/internal/repository"
	"campus-eats/internal/router"
	"campus-eats/internal/service"
	"campus-eats/internal/voucher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting campus-eats API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories and external accessors
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	menuCatalog := catalog.NewPgCatalog(pool, logger)
	userDirectory := directory.NewPgDirectory(pool, logger)

	// Initialize cart cache
	cartCache := cache.New(cfg.Cache.MaxSize, cfg.Cache.TTL, logger)

	// Initialize the order event producer
	var producer events.Producer
	if cfg.Events.Enabled {
		producer, err = events.NewKafkaProducer(cfg.Events.Brokers, cfg.Events.Topic, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize event producer: %w", err)
		}
	} else {
		producer = events.NewNoopProducer()
		logger.Info().Msg("order eventing disabled")
	}
	defer producer.Close()

	// Initialize the voucher validator with S3 and local fallback
	var vouchers voucher.Validator
	if cfg.Voucher.Enabled {
		fileLoader := voucher.NewFileLoader(logger)
		loader := fileLoader
		if cfg.Voucher.S3Enabled {
			s3Loader, err := voucher.NewS3Loader(ctx, cfg.Voucher.S3Bucket, cfg.Voucher.S3Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
			} else {
				loader = voucher.NewFallbackLoader(s3Loader, fileLoader, cfg.Voucher.S3Prefix, logger)
			}
		}

		validatorConfig := voucher.DefaultValidatorConfig()
		validatorConfig.FilePaths = cfg.Voucher.FilePaths
		vouchers, err = voucher.NewValidator(ctx, validatorConfig, loader, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize voucher validator: %w", err)
		}
		defer vouchers.Close()
	} else {
		logger.Info().Msg("voucher validation disabled")
	}

	// Initialize services
	cartService := service.NewCartService(cartRepo, menuCatalog, cartCache, logger)
	checkoutService := service.NewCheckoutService(cartRepo, orderRepo, menuCatalog, vouchers, cartCache, producer, logger)
	orderService := service.NewOrderService(orderRepo, userDirectory, producer, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService, logger)

	// Initialize router
	mux := router.New(cartHandler, orderHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
