package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/core/derive"
	"todolist/internal/core/domain"
	"todolist/internal/core/port"
	"todolist/internal/core/store"
)

// TodoService is the action facade: it validates intents and translates them
// into store transitions. Validation happens here and nowhere else.
type TodoService struct {
	store *store.Store
	probe port.Telemetry
}

func NewTodoService(st *store.Store, probe port.Telemetry) *TodoService {
	return &TodoService{
		store: st,
		probe: probe,
	}
}

// AddTodo creates a todo from trimmed text. Empty or whitespace-only text is
// rejected with ErrEmptyText and the collection is left unchanged. Category
// and priority default to Personal/medium when unset.
func (ts *TodoService) AddTodo(ctx context.Context, text string, category domain.Category, priority domain.Priority) (domain.Todo, error) {
	start := time.Now()

	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "AddTodo", []attribute.KeyValue{
		attribute.String("todo.category", string(category)),
		attribute.String("todo.priority", string(priority)),
	})
	defer span.End()

	text = strings.TrimSpace(text)

	if text == "" {
		ts.probe.RecordServiceOperation(ctx, "todo", "AddTodo", time.Since(start), domain.ErrEmptyText)
		return domain.Todo{}, domain.ErrEmptyText
	}

	if category == "" {
		category = domain.CategoryPersonal
	}

	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()

	todo := domain.Todo{
		ID:        uuid.NewString(),
		Text:      text,
		Completed: false,
		Category:  category,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ts.store.Add(ctx, todo)

	ts.probe.RecordBusinessEvent(ctx, "todo.created", todo.ID, map[string]interface{}{
		"category": string(todo.Category),
		"priority": string(todo.Priority),
	})
	ts.probe.RecordServiceOperation(ctx, "todo", "AddTodo", time.Since(start), nil)

	return todo, nil
}

// UpdateTodo applies a structured patch and stamps UpdatedAt.
func (ts *TodoService) UpdateTodo(ctx context.Context, id string, patch domain.TodoPatch) (domain.Todo, error) {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "UpdateTodo", []attribute.KeyValue{
		attribute.String("todo.id", id),
	})
	defer span.End()

	updated, found, err := ts.store.UpdateFields(ctx, id, patch, time.Now())

	if err != nil {
		ts.probe.RecordError(ctx, "UpdateTodo", err, map[string]interface{}{"todo.id": id})
		return domain.Todo{}, err
	}

	if !found {
		return domain.Todo{}, fmt.Errorf("update %s: %w", id, domain.ErrNotFound)
	}

	return updated, nil
}

func (ts *TodoService) DeleteTodo(ctx context.Context, id string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "DeleteTodo", []attribute.KeyValue{
		attribute.String("todo.id", id),
	})
	defer span.End()

	if !ts.store.Remove(ctx, id) {
		return fmt.Errorf("delete %s: %w", id, domain.ErrNotFound)
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.deleted", id, nil)

	return nil
}

// ToggleTodo flips completed. Unknown ids are a silent no-op.
func (ts *TodoService) ToggleTodo(ctx context.Context, id string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "ToggleTodo", []attribute.KeyValue{
		attribute.String("todo.id", id),
	})
	defer span.End()

	ts.store.ToggleCompleted(ctx, id)

	return nil
}

func (ts *TodoService) BulkDelete(ctx context.Context, ids []string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "BulkDelete", []attribute.KeyValue{
		attribute.Int("todo.count", len(ids)),
	})
	defer span.End()

	ts.store.BulkRemove(ctx, ids)

	return nil
}

func (ts *TodoService) BulkToggle(ctx context.Context, ids []string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "BulkToggle", []attribute.KeyValue{
		attribute.Int("todo.count", len(ids)),
	})
	defer span.End()

	ts.store.BulkToggleCompleted(ctx, ids)

	return nil
}

// MoveTodo consumes the sortable collaborator's "active moved over target"
// event: the dragged id takes the target id's position within the canonical
// order. Unknown or identical ids are a no-op.
func (ts *TodoService) MoveTodo(ctx context.Context, activeID, overID string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "MoveTodo", []attribute.KeyValue{
		attribute.String("todo.active_id", activeID),
		attribute.String("todo.over_id", overID),
	})
	defer span.End()

	if activeID == overID {
		return nil
	}

	todos := ts.store.Todos()
	oldIndex, newIndex := -1, -1

	for i, todo := range todos {
		if todo.ID == activeID {
			oldIndex = i
		}

		if todo.ID == overID {
			newIndex = i
		}
	}

	if oldIndex < 0 || newIndex < 0 {
		return nil
	}

	ids := make([]string, 0, len(todos))

	for _, todo := range todos {
		ids = append(ids, todo.ID)
	}

	moved := ids[oldIndex]
	ids = append(ids[:oldIndex], ids[oldIndex+1:]...)
	ids = append(ids[:newIndex], append([]string{moved}, ids[newIndex:]...)...)

	return ts.store.SetOrder(ctx, ids)
}

// ReorderTodos replaces the canonical order with an explicit id sequence,
// which must be a permutation of the current collection.
func (ts *TodoService) ReorderTodos(ctx context.Context, orderedIDs []string) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "ReorderTodos", []attribute.KeyValue{
		attribute.Int("todo.count", len(orderedIDs)),
	})
	defer span.End()

	return ts.store.SetOrder(ctx, orderedIDs)
}

// ListTodos returns the filtered view under the stored view state, optionally
// display-sorted. The canonical order is never affected.
func (ts *TodoService) ListTodos(ctx context.Context, opts port.ListOptions) []domain.Todo {
	todos := derive.Apply(ts.store.Todos(), ts.store.View())

	if opts.SortBy != "" {
		order := opts.Order

		if order != domain.SortAsc && order != domain.SortDesc {
			order = domain.SortDesc
		}

		todos = derive.Sort(todos, opts.SortBy, order)
	}

	return todos
}

func (ts *TodoService) AllTodos(ctx context.Context) []domain.Todo {
	return ts.store.Todos()
}

func (ts *TodoService) Stats(ctx context.Context) derive.Stats {
	return derive.Compute(ts.store.Todos())
}

func (ts *TodoService) GroupedByCategory(ctx context.Context) map[domain.Category][]domain.Todo {
	return derive.GroupByCategory(ts.store.Todos())
}

// ReplaceAll swaps in a full collection. Record validation is the codec's
// job; callers must have obtained user confirmation first.
func (ts *TodoService) ReplaceAll(ctx context.Context, todos []domain.Todo) error {
	ctx, span := ts.probe.StartServiceSpan(ctx, "todo", "ReplaceAll", []attribute.KeyValue{
		attribute.Int("todo.count", len(todos)),
	})
	defer span.End()

	ts.store.SetAll(ctx, todos)

	ts.probe.RecordBusinessEvent(ctx, "collection.replaced", "", map[string]interface{}{
		"todos": len(todos),
	})

	return nil
}

func (ts *TodoService) SetFilter(ctx context.Context, f domain.Filter) error {
	if !f.Valid() {
		return fmt.Errorf("invalid filter %q", f)
	}

	ts.store.SetFilter(f)

	return nil
}

func (ts *TodoService) SetSearchTerm(ctx context.Context, term string) {
	ts.store.SetSearchTerm(term)
}

func (ts *TodoService) SetSelectedCategory(ctx context.Context, category string) error {
	if category != domain.CategoryAll {
		valid := false

		for _, c := range domain.Categories() {
			if string(c) == category {
				valid = true
				break
			}
		}

		if !valid {
			return fmt.Errorf("invalid category %q", category)
		}
	}

	ts.store.SetSelectedCategory(category)

	return nil
}

func (ts *TodoService) View(ctx context.Context) domain.ViewState {
	return ts.store.View()
}
