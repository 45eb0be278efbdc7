package telemetry

import (
	"context"
	"errors"
	"interview-harvest/lib/configutil"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Endpoint is where one signal is exported. Grpc wins when both are set,
// neither set leaves the signal disabled.
type Endpoint struct {
	Grpc    string            `json:"grpc_endpoint"`
	Http    string            `json:"http_endpoint"`
	Headers map[string]string `json:"headers"`
}

func (e Endpoint) enabled() bool {
	return e.Grpc != "" || e.Http != ""
}

func (e Endpoint) protocol() string {
	if e.Grpc != "" {
		return "grpc"
	}
	return "http"
}

func (e Endpoint) url() string {
	if e.Grpc != "" {
		return e.Grpc
	}
	return e.Http
}

type Config struct {
	Traces  Endpoint `json:"traces"`
	Metrics Endpoint `json:"metrics"`
	// seconds between metric exports, defaults to 15
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
	// extra resource attributes, ex. {"deployment.environment": "nightly"}
	Attributes map[string]string `json:"attributes"`
}

func (c Config) metricInterval() time.Duration {
	if c.MetricIntervalSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.MetricIntervalSeconds) * time.Second
}

// Telemetry holds the providers installed by Setup. The zero value is a
// valid no-op, it is what SetupFromEnv returns when nothing is configured.
type Telemetry struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// Shutdown flushes pending spans and metrics.
func (t Telemetry) Shutdown(ctx context.Context) error {
	var errlist []error
	if t.TracerProvider != nil {
		errlist = append(errlist, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errlist = append(errlist, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errlist...)
}

// SetupFromEnv searches up the filesystem from the cwd for telemetry.json5
// and exports according to it. Without the file, exporting stays disabled.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no telemetry.json5 found, telemetry export disabled")
		return Telemetry{}, nil
	}
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

// Setup installs the global tracer and meter providers for every endpoint
// the config enables.
func Setup(ctx context.Context, serviceName string, config Config) (Telemetry, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName, config.Attributes)
	if err != nil {
		return Telemetry{}, err
	}

	var out Telemetry
	if config.Traces.enabled() {
		exporter, err := newSpanExporter(ctx, config.Traces)
		if err != nil {
			return Telemetry{}, err
		}
		out.TracerProvider = trace.NewTracerProvider(
			trace.WithBatcher(exporter),
			trace.WithResource(r),
		)
		otel.SetTracerProvider(out.TracerProvider)
	}

	if config.Metrics.enabled() {
		exporter, err := newMetricExporter(ctx, config.Metrics)
		if err != nil {
			out.Shutdown(context.Background())
			return Telemetry{}, err
		}
		out.MeterProvider = metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(config.metricInterval()))),
			metric.WithResource(r),
		)
		otel.SetMeterProvider(out.MeterProvider)
	}

	return out, nil
}

func newResource(serviceName string, extra map[string]string) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{semconv.ServiceName(serviceName)}
	for k, v := range extra {
		attrs = append(attrs, attribute.String(k, v))
	}
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, attrs...),
	)
}

func logExporter(signal string, e Endpoint) {
	slog.Info(
		signal+" export initialized",
		"type", e.protocol(),
		"endpoint", e.url(),
		"headers", len(e.Headers) > 0,
	)
}

func newSpanExporter(ctx context.Context, e Endpoint) (trace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	logExporter("trace", e)
	if e.protocol() == "grpc" {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.Grpc),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(e.Http),
		otlptracehttp.WithHeaders(e.Headers),
	)
}

func newMetricExporter(ctx context.Context, e Endpoint) (metric.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*3)
	defer cancel()

	logExporter("metric", e)
	if e.protocol() == "grpc" {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.Grpc),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(e.Http),
		otlpmetrichttp.WithHeaders(e.Headers),
	)
}
