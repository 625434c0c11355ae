package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/quickbite/orders/internal/config"
	"github.com/quickbite/orders/internal/database"
	idempotencypg "github.com/quickbite/orders/internal/idempotency/postgres"
	"github.com/quickbite/orders/internal/kafka"
	"github.com/quickbite/orders/internal/orders/adapters"
	ordershttp "github.com/quickbite/orders/internal/orders/adapters/http"
	"github.com/quickbite/orders/internal/orders/adapters/payment"
	orderspg "github.com/quickbite/orders/internal/orders/adapters/postgres"
	"github.com/quickbite/orders/internal/orders/app"
	"github.com/quickbite/orders/internal/orders/metrics"
	"github.com/quickbite/orders/internal/orders/ports"
	"github.com/quickbite/orders/internal/telemetry"
)

const meterName = "github.com/quickbite/orders"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(cfg.Service.LogLevel)
	log := logger.With("service", cfg.Service.Name)

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	meter := otel.Meter(meterName)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create database metrics: %w", err)
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create kafka metrics: %w", err)
	}
	orderMetrics, err := metrics.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create order metrics: %w", err)
	}
	httpMetrics, err := ordershttp.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create http metrics: %w", err)
	}

	repo := adapters.NewObservableRepository(orderspg.NewRepository(pool), dbMetrics)
	customers := orderspg.NewCustomerLookup(pool)
	products := orderspg.NewProductLookup(pool)
	notifications := idempotencypg.NewStore(pool)

	var gateway ports.PaymentGateway
	if cfg.Payment.BaseURL != "" {
		gateway = payment.NewGateway(cfg.Payment.BaseURL, cfg.Payment.Token)
	} else {
		log.Warn("PAYMENT_BASE_URL not set, using mock payment gateway")
		gateway = payment.NewMockGateway()
	}

	var bus ports.EventBus
	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("kafka publisher close failed", "error", err)
			}
		}()
		bus = publisher
	} else {
		bus = kafka.NewNoopEventBus()
	}
	events := adapters.NewObservableEventBus(bus, kafkaMetrics)

	service := app.NewService(repo, customers, products, gateway, events, notifications, log, orderMetrics)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	ordershttp.NewHandler(service).Register(router)

	var handler http.Handler = router
	handler = ordershttp.WithMetrics(handler, httpMetrics)
	handler = ordershttp.WithLogging(handler, log)
	handler = ordershttp.WithRecovery(handler, log)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
