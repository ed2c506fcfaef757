package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/domain"
	"todolist/internal/core/model/request"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/pkg/config"
	"todolist/pkg/tracing"
)

// CacheInvalidator lets mutating handlers flush the response cache without
// depending on its implementation.
type CacheInvalidator interface {
	InvalidateAll()
}

type TodoHandler struct {
	svc    port.TodoService
	logger *config.AppLogger
	cache  CacheInvalidator
}

func NewTodoHandler(svc port.TodoService, logger *config.AppLogger, cache CacheInvalidator) *TodoHandler {
	return &TodoHandler{
		svc:    svc,
		logger: logger,
		cache:  cache,
	}
}

func (t *TodoHandler) invalidate() {
	if t.cache != nil {
		t.cache.InvalidateAll()
	}
}

// ListTodos returns the filtered view under the stored view state. sort_by
// and order query params apply a display-only sort.
func (t *TodoHandler) ListTodos(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.todo.ListTodos", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	opts := port.ListOptions{}

	if sortBy := domain.SortKey(c.Query("sort_by")); sortBy != "" {
		if !sortBy.Valid() {
			helper.SendBadRequestError(c, "sort_by", "unknown sort key")
			return
		}

		opts.SortBy = sortBy
		opts.Order = domain.SortOrder(c.Query("order"))
	}

	todos := t.svc.ListTodos(ctx, opts)

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	c.JSON(http.StatusOK, response.ListResponse{
		Size:  len(todos),
		Todos: todos,
	})
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.CreateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.AddTodo(ctx, params.Text, params.Category, params.Priority)

	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			helper.SendBadRequestError(c, "text", err.Error())
			return
		}

		helper.SendInternalError(c, "Error creating todo")
		return
	}

	t.invalidate()
	helper.SendSuccess(c, http.StatusCreated, todo)
}

func (t *TodoHandler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.UpdateTodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	todo, err := t.svc.UpdateTodo(ctx, c.Param("id"), params.ToPatch())

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helper.SendNotFoundError(c, err.Error())
		case errors.Is(err, domain.ErrEmptyText):
			helper.SendBadRequestError(c, "text", err.Error())
		default:
			helper.SendInternalError(c, "Error updating todo")
		}

		return
	}

	t.invalidate()
	helper.SendSuccess(c, http.StatusOK, todo)
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	if err := t.svc.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		helper.SendNotFoundError(c, err.Error())
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

func (t *TodoHandler) ToggleTodo(c *gin.Context) {
	if err := t.svc.ToggleTodo(c.Request.Context(), c.Param("id")); err != nil {
		helper.SendInternalError(c, "Error toggling todo")
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo toggled",
	})
}

func (t *TodoHandler) BulkDelete(c *gin.Context) {
	var params request.BulkRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := t.svc.BulkDelete(c.Request.Context(), params.IDs); err != nil {
		helper.SendInternalError(c, "Error deleting todos")
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todos deleted",
	})
}

func (t *TodoHandler) BulkToggle(c *gin.Context) {
	var params request.BulkRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := t.svc.BulkToggle(c.Request.Context(), params.IDs); err != nil {
		helper.SendInternalError(c, "Error toggling todos")
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todos toggled",
	})
}

// MoveTodo consumes the drag collaborator's event: active_id takes over_id's
// position in the canonical order.
func (t *TodoHandler) MoveTodo(c *gin.Context) {
	var params request.MoveRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := t.svc.MoveTodo(c.Request.Context(), params.ActiveID, params.OverID); err != nil {
		helper.SendBadRequestError(c, "order", err.Error())
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Todos reordered",
	})
}

func (t *TodoHandler) SetOrder(c *gin.Context) {
	var params request.OrderRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := t.svc.ReorderTodos(c.Request.Context(), params.IDs); err != nil {
		if errors.Is(err, domain.ErrNotPermutation) {
			helper.SendBadRequestError(c, "ids", err.Error())
			return
		}

		helper.SendInternalError(c, "Error reordering todos")
		return
	}

	t.invalidate()

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated",
	})
}

func (t *TodoHandler) GetStats(c *gin.Context) {
	helper.SendSuccess(c, http.StatusOK, t.svc.Stats(c.Request.Context()))
}

func (t *TodoHandler) GetGrouped(c *gin.Context) {
	helper.SendSuccess(c, http.StatusOK, t.svc.GroupedByCategory(c.Request.Context()))
}
