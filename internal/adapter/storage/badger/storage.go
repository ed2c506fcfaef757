// Package badger persists the serialized collection in an embedded BadgerDB
// under a single fixed namespace key.
package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

const collectionKey = "todolist/todos"

type Storage struct {
	db *badger.DB
}

var _ port.CollectionStorage = (*Storage)(nil)

// Open opens a persistent store at path. SyncWrites is on: a persisted
// mutation must survive process death.
func Open(path string) (*Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("badger storage: path is required")
	}

	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("badger storage: create directory %s: %w", path, err)
	}

	opts := badger.DefaultOptions(path).
		WithSyncWrites(true).
		WithLogger(nil)

	db, err := badger.Open(opts)

	if err != nil {
		return nil, fmt.Errorf("badger storage: open %s: %w", path, err)
	}

	return &Storage{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory instance for tests.
func OpenInMemory() (*Storage, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))

	if err != nil {
		return nil, fmt.Errorf("badger storage: open in-memory: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Load(ctx context.Context) ([]domain.Todo, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var raw []byte

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(collectionKey))

		if err != nil {
			return err
		}

		raw, err = item.ValueCopy(nil)

		return err
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("badger storage: load: %w", err)
	}

	var todos []domain.Todo

	if err := json.Unmarshal(raw, &todos); err != nil {
		return nil, false, fmt.Errorf("badger storage: decode collection: %w", err)
	}

	return todos, true, nil
}

func (s *Storage) Save(ctx context.Context, todos []domain.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if todos == nil {
		todos = []domain.Todo{}
	}

	raw, err := json.Marshal(todos)

	if err != nil {
		return fmt.Errorf("badger storage: encode collection: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(collectionKey), raw)
	})

	if err != nil {
		return fmt.Errorf("badger storage: save: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
