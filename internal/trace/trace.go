// Package trace wires the OpenTelemetry SDK to the exporter named in the
// configuration. Spans are emitted by the deck application and the snapshot
// store; while tracing is disabled the global no-op provider swallows them.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/outbreak/internal/config"
	"github.com/zjrosen/outbreak/internal/log"
)

// Exporter names accepted in the configuration.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Init installs a tracer provider for the configured exporter and returns a
// shutdown function that flushes pending spans. When tracing is disabled the
// returned shutdown is a no-op and the global provider stays untouched.
func Init(ctx context.Context, cfg config.TraceConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "outbreak"),
		)),
	)
	otel.SetTracerProvider(provider)

	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter)

	return provider.Shutdown, nil
}

// newExporter builds the span exporter named by cfg.Exporter.
func newExporter(ctx context.Context, cfg config.TraceConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterOTLP:
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
	}
}
