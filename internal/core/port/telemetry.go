package port

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry lets the core emit spans and events without knowing the backend.
// The OTel probe wires this to a real tracer; tests use the no-op probe.
type Telemetry interface {
	StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span)
	StartStorageSpan(ctx context.Context, backend string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span)

	RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error)
	RecordStorageOperation(ctx context.Context, backend string, operation string, duration time.Duration, err error)

	RecordBusinessEvent(ctx context.Context, event string, entityID string, metadata map[string]interface{})
	RecordCollectionSize(ctx context.Context, size int)
	RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{})
}
