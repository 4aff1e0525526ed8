package commands

import (
	"context"
	"largestbanks/lib/telemetry"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// keepingExporter holds on to exported spans after shutdown, the in-memory
// exporter clears them.
type keepingExporter struct {
	*tracetest.InMemoryExporter
}

func (keepingExporter) Shutdown(context.Context) error { return nil }

func TestFlushTelemetryExportsBufferedSpans(t *testing.T) {
	exporter := keepingExporter{tracetest.NewInMemoryExporter()}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	t.Cleanup(func() { shutdownTelemetry = noopShutdown })
	shutdownTelemetry = telemetry.Telemetry{TracerProvider: provider}.Shutdown

	_, span := provider.Tracer("test").Start(context.Background(), "Run")
	span.End()
	require.Empty(t, exporter.GetSpans())

	flushTelemetry()
	require.Len(t, exporter.GetSpans(), 1)
	require.Equal(t, "Run", exporter.GetSpans()[0].Name)
}

func TestFlushTelemetryRunsOnce(t *testing.T) {
	calls := 0
	t.Cleanup(func() { shutdownTelemetry = noopShutdown })
	shutdownTelemetry = func(context.Context) error {
		calls++
		return nil
	}

	flushTelemetry()
	flushTelemetry()
	require.Equal(t, 1, calls)
}
