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
	appOrder "github.com/minpay/orderpay/internal/application/order"
	"github.com/minpay/orderpay/internal/infrastructure/httptransport"
	"github.com/minpay/orderpay/internal/infrastructure/id"
	"github.com/minpay/orderpay/internal/infrastructure/memory"
	infraobs "github.com/minpay/orderpay/internal/infrastructure/observability"
	"github.com/minpay/orderpay/internal/infrastructure/observability/oteltrace"
	"github.com/minpay/orderpay/internal/infrastructure/observability/prometrics"
	"github.com/minpay/orderpay/internal/infrastructure/observability/zaplogger"
	"github.com/minpay/orderpay/internal/infrastructure/outbox"
	"github.com/minpay/orderpay/internal/infrastructure/payment"
	"github.com/minpay/orderpay/internal/infrastructure/receipt"
	"github.com/minpay/orderpay/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	serviceName := getenvDefault("SERVICE_NAME", "orderpay")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("HTTP_ADDR", ":8080")

	baseLogger := zaplogger.MustNew(serviceName, env)
	if s, ok := baseLogger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	tel := infraobs.New(
		oteltrace.New(serviceName),
		baseLogger,
		prometrics.New(nil, serviceName),
	)

	orderRepo := memory.NewOrderRepository()
	gateway := payment.NewFakeGateway()
	if getenvDefault("PAYMENT_DECLINE_ALL", "false") == "true" {
		gateway.SetShouldSucceed(false)
	}

	bus := outbox.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	receiptWorker := receipt.New(bus, tel)
	receiptWorker.Start()

	idGenerator := id.NewUUIDGenerator()
	orderService := appOrder.NewService(orderRepo, tel)
	createOrder := appOrder.NewCreateOrderUseCase(orderRepo, idGenerator, bus, tel)
	payOrder := appOrder.NewPayOrderUseCase(orderRepo, gateway, bus, tel)

	handler := httptransport.NewHandler(orderService, createOrder, payOrder)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.Observe(baseLogger, tel, handler.Router()))

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error",
				observability.F("error", err.Error()),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error",
			observability.F("error", err.Error()),
		)
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
