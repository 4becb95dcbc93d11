// Package observability bundles the logger, tracer and metrics registry handed to every module.
package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/Black-And-White-Club/gala-night/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/gala-night/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/Black-And-White-Club/gala-night"

// Observability is the set of telemetry handles shared by the app.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
	Metrics  metrics.OperationMetrics
}

// Init builds the logger, tracer and metrics from configuration.
func Init(cfg config.ObservabilityConfig) (*Observability, error) {
	logger := NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	obs := &Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(tracerName),
		Metrics: metrics.NewNoop(),
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m, err := metrics.NewPrometheus(reg)
		if err != nil {
			return nil, err
		}
		obs.Registry = reg
		obs.Metrics = m
	}

	return obs, nil
}

// NewNoop returns telemetry that discards everything except the given logger.
func NewNoop(logger *slog.Logger) *Observability {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observability{
		Logger:  logger,
		Tracer:  noop.NewTracerProvider().Tracer("noop"),
		Metrics: metrics.NewNoop(),
	}
}

// NewLogger returns a text logger in development and a JSON logger elsewhere.
func NewLogger(environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(environment, "development") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
