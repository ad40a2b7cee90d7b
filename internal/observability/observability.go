package observability

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/runway-club/votewalk/internal/observability/attr"
)

// Observability bundles the logger, metrics registry, and tracer handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  *Metrics
	Tracer   trace.Tracer

	metricsServer *http.Server
}

// New builds the observability stack. environment selects the log level:
// "development" logs debug, everything else logs info.
func New(environment string) *Observability {
	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(attr.String("service", "votewalk"), attr.String("env", environment))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewMetrics(registry),
		Tracer:   otel.Tracer("votewalk"),
	}
}

// ServeMetrics exposes /metrics on addr. No-op when addr is empty.
func (o *Observability) ServeMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{}))
	o.metricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		o.Logger.InfoContext(ctx, "Metrics server listening", attr.String("addr", addr))
		if err := o.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			o.Logger.ErrorContext(ctx, "Metrics server failed", attr.Error(err))
		}
	}()
}

// Shutdown stops the metrics server, if one was started.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.metricsServer == nil {
		return nil
	}
	return o.metricsServer.Shutdown(ctx)
}
