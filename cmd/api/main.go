package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"paint-it-black-manufacturer/internal/client"
	"paint-it-black-manufacturer/internal/config"
	"paint-it-black-manufacturer/internal/logging"
	"paint-it-black-manufacturer/internal/metrics"
	"paint-it-black-manufacturer/internal/repository"
	"paint-it-black-manufacturer/internal/server"
	"paint-it-black-manufacturer/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const serviceName = "paint-it-black-manufacturer"

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(serviceName, cfg.Environment.Name, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("service_stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	db, err := client.InitDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer func() {
		if err := client.CloseDatabase(db); err != nil {
			logger.Error("database_close_failed", zap.Error(err))
		}
	}()

	processor, err := client.NewPaymentProcessor(cfg)
	if err != nil {
		return fmt.Errorf("init payment processor: %w", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	toolRepo := repository.NewToolRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokens := service.NewTokenService(cfg.Auth)
	identities := service.NewIdentityVerifier(cfg.Auth)
	userService := service.NewUserService(userRepo, tokens, identities, cfg.Database.Timeout)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	err = userService.SeedAdmins(seedCtx, cfg.Auth.AdminEmails)
	cancelSeed()
	if err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}

	orderService := service.NewOrderService(
		db,
		processor,
		orderRepo,
		toolRepo,
		paymentRepo,
		m,
		cfg.Database,
		cfg.Payment,
	)
	catalogService := service.NewCatalogService(toolRepo, reviewRepo, cfg.Database.Timeout)

	srv := server.NewServer(cfg.HTTP, server.Services{
		Orders:  orderService,
		Users:   userService,
		Catalog: catalogService,
		Tokens:  tokens,
	}, logger, m, reg)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	logger.Info("service_started",
		zap.String("address", cfg.Address()),
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("payment_provider", processor.Provider()),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		logger.Info("shutdown_signal_received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("shutdown_complete")
	return nil
}
