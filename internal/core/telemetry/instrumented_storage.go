package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

// InstrumentedStorage decorates a collection storage with the telemetry
// probe: a span and an operation metric per call, and the collection size
// gauge refreshed from whatever passes through.
type InstrumentedStorage struct {
	inner   port.CollectionStorage
	backend string
	probe   port.Telemetry
}

func NewInstrumentedStorage(inner port.CollectionStorage, backend string, probe port.Telemetry) *InstrumentedStorage {
	return &InstrumentedStorage{
		inner:   inner,
		backend: backend,
		probe:   probe,
	}
}

var _ port.CollectionStorage = (*InstrumentedStorage)(nil)

func (s *InstrumentedStorage) Load(ctx context.Context) ([]domain.Todo, bool, error) {
	start := time.Now()

	ctx, span := s.probe.StartStorageSpan(ctx, s.backend, "Load", nil)
	defer span.End()

	todos, found, err := s.inner.Load(ctx)

	span.SetAttributes(
		attribute.Int("storage.todos", len(todos)),
		attribute.Bool("storage.found", found),
	)
	s.probe.RecordStorageOperation(ctx, s.backend, "Load", time.Since(start), err)

	if err == nil {
		s.probe.RecordCollectionSize(ctx, len(todos))
	}

	return todos, found, err
}

func (s *InstrumentedStorage) Save(ctx context.Context, todos []domain.Todo) error {
	start := time.Now()

	ctx, span := s.probe.StartStorageSpan(ctx, s.backend, "Save", []attribute.KeyValue{
		attribute.Int("storage.todos", len(todos)),
	})
	defer span.End()

	err := s.inner.Save(ctx, todos)

	s.probe.RecordStorageOperation(ctx, s.backend, "Save", time.Since(start), err)

	if err == nil {
		s.probe.RecordCollectionSize(ctx, len(todos))
	}

	return err
}

func (s *InstrumentedStorage) Close() error {
	return s.inner.Close()
}
