package tracing

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/propagation"
)

const headerTraceparent = "traceparent"

// KafkaHeaders returns the traceparent header of the span in ctx, or nil
// when ctx carries no span.
func KafkaHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	traceparent, ok := carrier[headerTraceparent]
	if !ok {
		return nil
	}
	return []kgo.RecordHeader{{Key: headerTraceparent, Value: []byte(traceparent)}}
}
