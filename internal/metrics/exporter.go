package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

const (
	defaultServiceName  = "shl-live-service"
	defaultPushInterval = 15 * time.Second
)

// ExportConfig selects where recorded metrics go. Prometheus scraping is always
// available when enabled; OTLP push is added when an endpoint is set.
type ExportConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	OTLPInsecure bool
	PushInterval time.Duration
}

// Shutdown flushes and stops the exporters created by Setup.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Swapped in tests.
var (
	newScrapeReader = scrapeReader
	newPushReader   = pushReader
)

// Setup builds a Recorder backed by an OpenTelemetry meter provider. The returned
// handler serves the Prometheus scrape endpoint and is nil when export is disabled.
func Setup(ctx context.Context, cfg ExportConfig) (*Recorder, http.Handler, Shutdown, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, noopShutdown, nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.PushInterval <= 0 {
		cfg.PushInterval = defaultPushInterval
	}

	scrape, handler, err := newScrapeReader()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("prometheus exporter: %w", err)
	}
	readers := []sdkmetric.Reader{scrape}
	if cfg.OTLPEndpoint != "" {
		push, err := newPushReader(ctx, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("otlp exporter: %w", err)
		}
		readers = append(readers, push)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("metrics resource: %w", err)
	}
	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	provider := sdkmetric.NewMeterProvider(opts...)

	inst, err := newInstruments(provider.Meter(cfg.ServiceName))
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, nil, nil, err
	}
	return newRecorder(inst), handler, provider.Shutdown, nil
}

func scrapeReader() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	exp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return exp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}), nil
}

func pushReader(ctx context.Context, cfg ExportConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.PushInterval)), nil
}
