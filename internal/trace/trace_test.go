package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/outbreak/internal/config"
)

// restoreGlobalProvider resets the global tracer provider after a test that
// calls Init with tracing enabled.
func restoreGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

// TestInit_Disabled verifies disabled tracing yields a working no-op shutdown.
func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TraceConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	require.NoError(t, shutdown(context.Background()))
}

// TestInit_StdoutExporter verifies the SDK provider replaces the global one.
func TestInit_StdoutExporter(t *testing.T) {
	restoreGlobalProvider(t)

	shutdown, err := Init(context.Background(), config.TraceConfig{
		Enabled:  true,
		Exporter: ExporterStdout,
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "global provider should be the SDK provider")

	require.NoError(t, shutdown(context.Background()))
}

// TestInit_UnknownExporter verifies misconfigured exporters fail fast.
func TestInit_UnknownExporter(t *testing.T) {
	_, err := Init(context.Background(), config.TraceConfig{
		Enabled:  true,
		Exporter: "jaeger",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown trace exporter")
}
