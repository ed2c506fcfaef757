package request

import (
	"todolist/internal/core/domain"
)

type CreateTodoRequest struct {
	Text     string          `json:"text" validate:"required"`
	Category domain.Category `json:"category" validate:"omitempty,oneof=Work Personal Shopping Health"`
	Priority domain.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type UpdateTodoRequest struct {
	Text     *string          `json:"text" validate:"omitempty,min=1,max=255"`
	Category *domain.Category `json:"category" validate:"omitempty,oneof=Work Personal Shopping Health"`
	Priority *domain.Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func (r UpdateTodoRequest) ToPatch() domain.TodoPatch {
	return domain.TodoPatch{
		Text:     r.Text,
		Category: r.Category,
		Priority: r.Priority,
	}
}

type BulkRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type MoveRequest struct {
	ActiveID string `json:"active_id" validate:"required"`
	OverID   string `json:"over_id" validate:"required"`
}

type OrderRequest struct {
	IDs []string `json:"ids" validate:"required,dive,required"`
}

type ViewRequest struct {
	Filter           domain.Filter `json:"filter" validate:"omitempty,oneof=all active completed"`
	SearchTerm       *string       `json:"searchTerm"`
	SelectedCategory string        `json:"selectedCategory" validate:"omitempty,oneof=all Work Personal Shopping Health"`
}
