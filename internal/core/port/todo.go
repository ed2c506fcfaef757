package port

import (
	"context"

	"todolist/internal/core/derive"
	"todolist/internal/core/domain"
)

// ListOptions selects an optional display sort for a filtered listing.
// A zero SortBy means "canonical collection order".
type ListOptions struct {
	SortBy domain.SortKey
	Order  domain.SortOrder
}

type TodoService interface {
	AddTodo(ctx context.Context, text string, category domain.Category, priority domain.Priority) (domain.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch domain.TodoPatch) (domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	ToggleTodo(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) error
	BulkToggle(ctx context.Context, ids []string) error
	MoveTodo(ctx context.Context, activeID, overID string) error
	ReorderTodos(ctx context.Context, orderedIDs []string) error

	ListTodos(ctx context.Context, opts ListOptions) []domain.Todo
	AllTodos(ctx context.Context) []domain.Todo
	Stats(ctx context.Context) derive.Stats
	GroupedByCategory(ctx context.Context) map[domain.Category][]domain.Todo

	ReplaceAll(ctx context.Context, todos []domain.Todo) error

	SetFilter(ctx context.Context, f domain.Filter) error
	SetSearchTerm(ctx context.Context, term string)
	SetSelectedCategory(ctx context.Context, category string) error
	View(ctx context.Context) domain.ViewState
}
