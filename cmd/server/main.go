package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nathanyu/accounts-service/internal/handler"
	"github.com/nathanyu/accounts-service/internal/middleware"
	"github.com/nathanyu/accounts-service/internal/notify"
	"github.com/nathanyu/accounts-service/internal/store"
	"github.com/nathanyu/accounts-service/internal/telemetry"
	"github.com/nathanyu/accounts-service/internal/transfer"
	"github.com/nathanyu/accounts-service/internal/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "accounts-service"

// Config holds application configuration
type Config struct {
	Port         int
	MetricsPort  int
	NATSUrl      string
	OTLPEndpoint string
	GinMode      string
}

func main() {
	cfg := parseFlags()

	// Initialize structured logging
	telemetry.InitLogger(serviceName)

	// Initialize OpenTelemetry tracing
	cleanup, err := telemetry.InitTracer(serviceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Warn("failed to initialize tracer", "error", err)
	} else {
		defer cleanup()
	}

	gin.SetMode(cfg.GinMode)

	slog.Info("starting accounts service")

	// Notifications go to NATS when available; the service stays up on the
	// log-backed sink otherwise, since delivery is best-effort anyway.
	var notifier transfer.Notifier
	natsNotifier, err := notify.NewNATSNotifier(cfg.NATSUrl)
	if err != nil {
		slog.Warn("NATS unavailable, falling back to log notifier", "url", cfg.NATSUrl, "error", err)
		notifier = notify.NewLogNotifier()
	} else {
		defer natsNotifier.Close()
		notifier = natsNotifier
		slog.Info("connected to NATS", "url", cfg.NATSUrl)
	}

	accountStore := store.NewAccountStore()
	validator := validation.NewTransferValidator()
	coordinator := transfer.NewCoordinator(accountStore, validator, notifier)

	h := handler.NewHandler(accountStore, coordinator)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing())
	router.Use(middleware.Metrics())
	handler.SetupRoutes(router, h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Metrics server on a separate port for Prometheus scraping
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: metricsMux,
	}

	go func() {
		slog.Info("HTTP server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		slog.Info("metrics server listening", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced to shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(ctx); err != nil {
		slog.Error("metrics server forced to shutdown", "error", err)
	}

	slog.Info("service stopped")
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.IntVar(&cfg.Port, "port", getEnvInt("PORT", 8080), "HTTP server port")
	flag.IntVar(&cfg.MetricsPort, "metrics-port", getEnvInt("METRICS_PORT", 9090), "Metrics server port")
	flag.StringVar(&cfg.NATSUrl, "nats-url", getEnv("NATS_URL", "nats://localhost:4222"), "NATS server URL")
	flag.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"), "OTLP collector endpoint")
	flag.StringVar(&cfg.GinMode, "gin-mode", getEnv("GIN_MODE", "release"), "Gin mode (debug/release)")

	flag.Parse()

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var v int
		if _, err := fmt.Sscanf(value, "%d", &v); err == nil {
			return v
		}
	}
	return defaultValue
}
