package response

import (
	"todolist/internal/core/domain"
)

type ListResponse struct {
	Size  int           `json:"size"`
	Todos []domain.Todo `json:"todos"`
}

type ImportPreviewResponse struct {
	Todos     int  `json:"todos"`
	Confirmed bool `json:"confirmed"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
