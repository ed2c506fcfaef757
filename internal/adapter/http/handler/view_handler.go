package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/model/request"
	"todolist/internal/core/port"
)

// ViewHandler manages the ephemeral view state: filter, search term and
// category selection. None of it is persisted.
type ViewHandler struct {
	svc   port.TodoService
	cache CacheInvalidator
}

func NewViewHandler(svc port.TodoService, cache CacheInvalidator) *ViewHandler {
	return &ViewHandler{
		svc:   svc,
		cache: cache,
	}
}

func (v *ViewHandler) GetView(c *gin.Context) {
	helper.SendSuccess(c, http.StatusOK, v.svc.View(c.Request.Context()))
}

// SetView updates whichever view fields are present in the body.
func (v *ViewHandler) SetView(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.ViewRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if params.Filter != "" {
		if err := v.svc.SetFilter(ctx, params.Filter); err != nil {
			helper.SendBadRequestError(c, "filter", err.Error())
			return
		}
	}

	if params.SearchTerm != nil {
		v.svc.SetSearchTerm(ctx, *params.SearchTerm)
	}

	if params.SelectedCategory != "" {
		if err := v.svc.SetSelectedCategory(ctx, params.SelectedCategory); err != nil {
			helper.SendBadRequestError(c, "selectedCategory", err.Error())
			return
		}
	}

	// View changes alter what GET /todos returns.
	if v.cache != nil {
		v.cache.InvalidateAll()
	}

	helper.SendSuccess(c, http.StatusOK, v.svc.View(ctx))
}
