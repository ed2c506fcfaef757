package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	api "todolist/internal/adapter/http"
	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewAppLogger("todolist")

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer logger.Sync()

	appConfig := config.FromEnv()

	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "todolist",
		ServiceVersion: "1.0.0",
		MetricsPort:    appConfig.MetricsPort,
		OTLPEndpoint:   appConfig.OTLPEndpoint,
	})

	if err != nil {
		log.Fatal("Failed to initialize telemetry:", err)
	}

	defer tel.Shutdown(context.Background())

	metrics := telemetry.NewAppMetrics(tel.PrometheusRegistry)

	// Blocks until the listener fails or a signal cancels ctx; StartServer
	// drains in-flight requests and closes the storage before returning.
	if err := api.StartServer(ctx, metrics, logger, appConfig); err != nil {
		log.Fatal("Server failed:", err)
	}

	logger.Info(context.Background(), "Shutdown complete")
}
