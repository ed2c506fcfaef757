// Package store owns the canonical todo collection and the ephemeral view
// state. It is the single source of truth: every mutation is a named state
// transition, and every collection-affecting transition writes the full
// collection through the storage collaborator.
package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"todolist/internal/core/domain"
	"todolist/internal/core/port"
)

// Store is an explicit handle created at process start and closed at exit.
// Collection order is semantically meaningful; only SetAll and SetOrder
// change it wholesale.
type Store struct {
	mu      sync.Mutex
	todos   []domain.Todo
	view    domain.ViewState
	storage port.CollectionStorage
	logger  *zap.Logger
}

func New(storage port.CollectionStorage, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		view:    domain.DefaultViewState(),
		storage: storage,
		logger:  logger,
	}
}

// Open restores the collection from storage. A missing record leaves the
// collection empty; a corrupt or unreadable record is logged and likewise
// leaves it empty. Call once before any other operation.
func (s *Store) Open(ctx context.Context) error {
	todos, found, err := s.storage.Load(ctx)

	if err != nil {
		s.logger.Warn("failed to restore collection, starting empty", zap.Error(err))
		return nil
	}

	if !found {
		return nil
	}

	s.mu.Lock()
	s.todos = todos
	s.mu.Unlock()

	s.logger.Info("collection restored", zap.Int("todos", len(todos)))

	return nil
}

func (s *Store) Close() error {
	return s.storage.Close()
}

// Todos returns a copy of the collection in canonical order.
func (s *Store) Todos() []domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)

	return out
}

func (s *Store) View() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view
}

// SetAll replaces the entire collection verbatim. Record validation is the
// codec's responsibility before anything reaches here.
func (s *Store) SetAll(ctx context.Context, todos []domain.Todo) {
	s.mu.Lock()
	s.todos = make([]domain.Todo, len(todos))
	copy(s.todos, todos)
	s.mu.Unlock()

	s.persist(ctx)
}

// Add appends one todo. Text validation is the facade's contract, not the
// store's.
func (s *Store) Add(ctx context.Context, todo domain.Todo) {
	s.mu.Lock()
	s.todos = append(s.todos, todo)
	s.mu.Unlock()

	s.persist(ctx)
}

// UpdateFields merges the patch into the todo with the given id and stamps
// UpdatedAt. Absent ids are a no-op, reported through the bool.
func (s *Store) UpdateFields(ctx context.Context, id string, patch domain.TodoPatch, now time.Time) (domain.Todo, bool, error) {
	s.mu.Lock()

	for i := range s.todos {
		if s.todos[i].ID != id {
			continue
		}

		if err := s.todos[i].Apply(patch, now); err != nil {
			s.mu.Unlock()
			return domain.Todo{}, true, err
		}

		updated := s.todos[i]
		s.mu.Unlock()

		s.persist(ctx)

		return updated, true, nil
	}

	s.mu.Unlock()

	return domain.Todo{}, false, nil
}

// Remove deletes the todo with the given id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()

	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			s.mu.Unlock()

			s.persist(ctx)

			return true
		}
	}

	s.mu.Unlock()

	return false
}

// ToggleCompleted flips completed on the matching todo. UpdatedAt is left
// alone: a toggle is not a field-level edit.
func (s *Store) ToggleCompleted(ctx context.Context, id string) bool {
	s.mu.Lock()

	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Completed = !s.todos[i].Completed
			s.mu.Unlock()

			s.persist(ctx)

			return true
		}
	}

	s.mu.Unlock()

	return false
}

// BulkRemove drops every todo whose id is in ids. Absent ids are ignored.
func (s *Store) BulkRemove(ctx context.Context, ids []string) {
	member := idSet(ids)

	s.mu.Lock()

	kept := s.todos[:0]

	for _, todo := range s.todos {
		if !member[todo.ID] {
			kept = append(kept, todo)
		}
	}

	s.todos = kept
	s.mu.Unlock()

	s.persist(ctx)
}

// BulkToggleCompleted flips completed on every todo whose id is in ids.
func (s *Store) BulkToggleCompleted(ctx context.Context, ids []string) {
	member := idSet(ids)

	s.mu.Lock()

	for i := range s.todos {
		if member[s.todos[i].ID] {
			s.todos[i].Completed = !s.todos[i].Completed
		}
	}

	s.mu.Unlock()

	s.persist(ctx)
}

// SetOrder permutes the collection into the given id order. Anything that is
// not a permutation of the current id set is rejected. Field values always
// come from the current collection, so a reorder can never alter a todo.
func (s *Store) SetOrder(ctx context.Context, orderedIDs []string) error {
	s.mu.Lock()

	if len(orderedIDs) != len(s.todos) {
		s.mu.Unlock()
		return domain.ErrNotPermutation
	}

	byID := make(map[string]domain.Todo, len(s.todos))

	for _, todo := range s.todos {
		byID[todo.ID] = todo
	}

	reordered := make([]domain.Todo, 0, len(orderedIDs))

	for _, id := range orderedIDs {
		todo, ok := byID[id]

		if !ok {
			s.mu.Unlock()
			return domain.ErrNotPermutation
		}

		delete(byID, id)
		reordered = append(reordered, todo)
	}

	s.todos = reordered
	s.mu.Unlock()

	s.persist(ctx)

	return nil
}

func (s *Store) SetFilter(f domain.Filter) {
	s.mu.Lock()
	s.view.Filter = f
	s.mu.Unlock()
}

func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	s.view.SearchTerm = term
	s.mu.Unlock()
}

func (s *Store) SetSelectedCategory(category string) {
	s.mu.Lock()
	s.view.SelectedCategory = category
	s.mu.Unlock()
}

// persist writes the full collection. Storage failure is non-fatal: the
// in-memory state stays authoritative and the error is only logged.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]domain.Todo, len(s.todos))
	copy(snapshot, s.todos)
	s.mu.Unlock()

	if err := s.storage.Save(ctx, snapshot); err != nil {
		s.logger.Warn("failed to persist collection", zap.Error(err), zap.Int("todos", len(snapshot)))
	}
}

func idSet(ids []string) map[string]bool {
	member := make(map[string]bool, len(ids))

	for _, id := range ids {
		member[id] = true
	}

	return member
}
