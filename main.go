package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/namastenepal/product-service/internal/app/service"
	"github.com/namastenepal/product-service/internal/domain"
	"github.com/namastenepal/product-service/internal/infrastructure/config"
	"github.com/namastenepal/product-service/internal/infrastructure/http"
	"github.com/namastenepal/product-service/internal/infrastructure/http/handler"
	"github.com/namastenepal/product-service/internal/infrastructure/repository/memory"
	mongorepo "github.com/namastenepal/product-service/internal/infrastructure/repository/mongo"
	"github.com/namastenepal/product-service/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "product-service"

func main() {
	if err := run(); err != nil {
		log.Printf("Product Service exited: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	var telem *telemetry.Telemetry
	if cfg.OTLP.ExportEnabled {
		telem, err = telemetry.NewTelemetry(&cfg.OTLP)
	} else {
		telem, err = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer(instrumentationName)
	meter := telem.MeterProvider.Meter(instrumentationName)
	logger := telem.Logger

	logger.Info("Starting Product Service",
		slog.String("storage_driver", cfg.Storage.Driver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo, closeRepo, err := newRepository(ctx, cfg, tracer, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		return err
	}
	defer closeRepo()

	productService := service.NewProductService(repo, tracer, meter, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	server := http.NewServer(&cfg.Server, productHandler, logger, telem)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", slog.String("error", err.Error()))
			serverErr <- err
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")

	select {
	case err := <-serverErr:
		return err
	default:
		return nil
	}
}

// newRepository builds the configured storage adapter and its cleanup func
func newRepository(
	ctx context.Context,
	cfg *config.Config,
	tracer trace.Tracer,
	logger *slog.Logger,
) (domain.ProductRepository, func(), error) {
	if cfg.Storage.Driver == config.StorageMemory {
		return memory.NewProductRepository(tracer, logger), func() {}, nil
	}

	client, err := mongorepo.Connect(ctx, &cfg.Storage.Mongo)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Connected to MongoDB",
		slog.String("database", cfg.Storage.Mongo.Database),
		slog.String("collection", mongorepo.CollectionName),
	)

	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", slog.String("error", err.Error()))
		}
	}

	db := client.Database(cfg.Storage.Mongo.Database)
	return mongorepo.NewProductRepository(db, tracer, logger), closeFn, nil
}
