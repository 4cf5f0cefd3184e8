package tracing_test

import (
	"context"
	"testing"

	"orderflow/internal/pkg/tracing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestKafkaHeaders(t *testing.T) {
	t.Run("should be empty without a span", func(t *testing.T) {
		assert.Empty(t, tracing.KafkaHeaders(context.Background()))
	})

	t.Run("should carry the active span", func(t *testing.T) {
		tp := sdktrace.NewTracerProvider()
		t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
		ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
		defer span.End()

		headers := tracing.KafkaHeaders(ctx)

		require.Len(t, headers, 1)
		assert.Equal(t, "traceparent", headers[0].Key)
		assert.Contains(t, string(headers[0].Value), span.SpanContext().TraceID().String())
	})
}

func TestInit_WithoutExporter(t *testing.T) {
	shutdown, err := tracing.Init(context.Background(), tracing.Config{ServiceName: "orderflow"})

	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
