package domain

import (
	"errors"
	"strings"
	"time"
)

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryShopping Category = "Shopping"
	CategoryHealth   Category = "Health"
)

// Categories lists every selectable category, in display order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryPersonal, CategoryShopping, CategoryHealth}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank maps priorities onto a comparable scale. Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

var (
	ErrEmptyText      = errors.New("todo text must not be empty")
	ErrNotFound       = errors.New("todo not found")
	ErrNotPermutation = errors.New("new order is not a permutation of the collection")
)

// Todo is the single task record. ID and CreatedAt are fixed at creation;
// UpdatedAt moves on field-level updates only, never on toggle or reorder.
type Todo struct {
	ID        string    `json:"id" validate:"required"`
	Text      string    `json:"text" validate:"required,min=1,max=255"`
	Completed bool      `json:"completed"`
	Category  Category  `json:"category" validate:"oneof=Work Personal Shopping Health"`
	Priority  Priority  `json:"priority" validate:"oneof=low medium high"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TodoPatch carries the mutable fields of a todo. Nil means "leave as is".
type TodoPatch struct {
	Text     *string   `json:"text,omitempty" validate:"omitempty,min=1,max=255"`
	Category *Category `json:"category,omitempty" validate:"omitempty,oneof=Work Personal Shopping Health"`
	Priority *Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

func (p TodoPatch) IsZero() bool {
	return p.Text == nil && p.Category == nil && p.Priority == nil
}

// Apply merges the patch into the todo and stamps UpdatedAt. An empty patch
// leaves the todo untouched. Patched text is trimmed; a whitespace-only text
// is rejected with ErrEmptyText.
func (t *Todo) Apply(patch TodoPatch, now time.Time) error {
	if patch.IsZero() {
		return nil
	}

	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)

		if text == "" {
			return ErrEmptyText
		}

		t.Text = text
	}

	if patch.Category != nil {
		t.Category = *patch.Category
	}

	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}

	t.UpdatedAt = now

	return nil
}
