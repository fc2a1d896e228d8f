package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func restoreProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() {
		if otel.GetTracerProvider() != prev {
			otel.SetTracerProvider(prev)
		}
	})
}

func TestInit_None(t *testing.T) {
	restoreProvider(t)
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), Config{ServiceName: "movie-review", TraceExporter: ExporterNone})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Stdout(t *testing.T) {
	restoreProvider(t)

	shutdown, err := Init(context.Background(), Config{ServiceName: "movie-review", TraceExporter: ExporterStdout})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "sdk tracer provider not installed")

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.IsRecording())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporter(t *testing.T) {
	restoreProvider(t)

	_, err := Init(context.Background(), Config{TraceExporter: "zipkin"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownExporter)
}
