// Package memory is a map-backed collection storage for tests and the
// ephemeral "memory" backend.
package memory

import (
	"context"
	"sync"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

type Storage struct {
	mu    sync.Mutex
	todos []domain.Todo
	saved bool

	// FailSave forces Save to return this error, for exercising the
	// non-fatal persistence path in tests.
	FailSave error
}

func New() *Storage {
	return &Storage{}
}

var _ port.CollectionStorage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) ([]domain.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, false, nil
	}

	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)

	return out, true, nil
}

func (s *Storage) Save(ctx context.Context, todos []domain.Todo) error {
	if s.FailSave != nil {
		return s.FailSave
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = make([]domain.Todo, len(todos))
	copy(s.todos, todos)
	s.saved = true

	return nil
}

func (s *Storage) Close() error {
	return nil
}
