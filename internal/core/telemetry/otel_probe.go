package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"todolist/internal/core/port"
)

// OTelProbe emits spans through the global tracer provider and mirrors
// operation outcomes into the app metrics and logger.
type OTelProbe struct {
	tracer  trace.Tracer
	logger  *zap.Logger
	metrics *AppMetrics
}

func NewOTelProbe(serviceName string, logger *zap.Logger, metrics *AppMetrics) port.Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OTelProbe{
		tracer:  otel.Tracer(serviceName),
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OTelProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}, attrs...)

	return p.tracer.Start(ctx, fmt.Sprintf("service.%s.%s", service, operation), trace.WithAttributes(spanAttrs...))
}

func (p *OTelProbe) StartStorageSpan(ctx context.Context, backend string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		attribute.String("storage.backend", backend),
		attribute.String("storage.operation", operation),
		attribute.String("component", "storage"),
	}, attrs...)

	return p.tracer.Start(ctx, fmt.Sprintf("storage.%s.%s", backend, operation), trace.WithAttributes(spanAttrs...))
}

func (p *OTelProbe) RecordServiceOperation(ctx context.Context, service string, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int64("operation.duration_ms", duration.Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if p.metrics != nil {
		p.metrics.RecordTodoOperation(operation, err)
	}
}

func (p *OTelProbe) RecordStorageOperation(ctx context.Context, backend string, operation string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.Int64("operation.duration_ms", duration.Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if p.metrics != nil {
		p.metrics.RecordStorageOperation(backend, operation, err)
	}
}

func (p *OTelProbe) RecordBusinessEvent(ctx context.Context, event string, entityID string, metadata map[string]interface{}) {
	attrs := []attribute.KeyValue{
		attribute.String("event.name", event),
	}

	if entityID != "" {
		attrs = append(attrs, attribute.String("event.entity_id", entityID))
	}

	for key, value := range metadata {
		attrs = append(attrs, attribute.String(key, fmt.Sprintf("%v", value)))
	}

	trace.SpanFromContext(ctx).AddEvent(event, trace.WithAttributes(attrs...))
}

func (p *OTelProbe) RecordCollectionSize(ctx context.Context, size int) {
	if p.metrics != nil {
		p.metrics.SetCollectionSize(size)
	}
}

func (p *OTelProbe) RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	fields := []zap.Field{zap.String("operation", operation), zap.Error(err)}

	for key, value := range metadata {
		fields = append(fields, zap.Any(key, value))
	}

	p.logger.Error("operation failed", fields...)
}
