package port

import (
	"context"

	"todolist/internal/core/domain"
)

// CollectionStorage is the durable key-value collaborator holding the
// JSON-serialized collection under one fixed namespace key. View state never
// goes through here.
type CollectionStorage interface {
	// Load reads the persisted collection. The bool reports whether a
	// record existed at all; a missing record is not an error.
	Load(ctx context.Context) ([]domain.Todo, bool, error)

	// Save writes the whole collection, replacing any previous value.
	Save(ctx context.Context, todos []domain.Todo) error

	Close() error
}
