package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"todolist/internal/adapter/http/helper"
	"todolist/internal/core/codec"
	"todolist/internal/core/model/response"
	"todolist/internal/core/port"
	"todolist/pkg/config"
	"todolist/pkg/tracing"
)

// maxImportBytes caps the import body well above any plausible export size.
const maxImportBytes = 8 << 20

// TransferHandler moves whole collections in and out through the export
// document format.
type TransferHandler struct {
	svc    port.TodoService
	logger *config.AppLogger
	cache  CacheInvalidator
}

func NewTransferHandler(svc port.TodoService, logger *config.AppLogger, cache CacheInvalidator) *TransferHandler {
	return &TransferHandler{
		svc:    svc,
		logger: logger,
		cache:  cache,
	}
}

// Export streams the versioned export document as a dated file download.
func (t *TransferHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	data, err := codec.ExportDocument(t.svc.AllTodos(ctx), now)

	if err != nil {
		helper.SendInternalError(c, "Error exporting todos")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", codec.ExportFilename(now)))
	c.Data(http.StatusOK, "application/json", data)
}

// Import parses an export document and replaces the collection with it. The
// replacement only happens with confirm=true; without it the handler answers
// with what WOULD be imported, preserving the approve-before-replace rule.
func (t *TransferHandler) Import(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.transfer.Import", []attribute.KeyValue{
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))

	if err != nil {
		helper.SendBadRequestError(c, "request", "Failed to read import document")
		return
	}

	todos, err := codec.ImportDocument(body)

	if err != nil {
		tracing.AddSpanError(span, err)
		t.logger.Warn(ctx, "import rejected", zap.Error(err))
		helper.SendFormatError(c, err.Error())

		return
	}

	span.SetAttributes(attribute.Int("import.todos", len(todos)))

	if c.Query("confirm") != "true" {
		helper.SendSuccess(c, http.StatusOK, response.ImportPreviewResponse{
			Todos:     len(todos),
			Confirmed: false,
		}, fmt.Sprintf("This will import %d todos and replace the current collection. Repeat with confirm=true.", len(todos)))

		return
	}

	if err := t.svc.ReplaceAll(ctx, todos); err != nil {
		helper.SendInternalError(c, "Error importing todos")
		return
	}

	if t.cache != nil {
		t.cache.InvalidateAll()
	}

	t.logger.Info(ctx, "collection imported", zap.Int("todos", len(todos)))

	helper.SendSuccess(c, http.StatusOK, response.ImportPreviewResponse{
		Todos:     len(todos),
		Confirmed: true,
	})
}
