package http

import (
	"todolist/internal/adapter/http/handler"
	"todolist/internal/core/port"
	"todolist/internal/core/service"
	"todolist/internal/core/store"
	"todolist/pkg/config"
	pkgresponse "todolist/pkg/response"
)

type Container struct {
	Store   *store.Store
	UseCase port.TodoService

	TodoHandler     *handler.TodoHandler
	ViewHandler     *handler.ViewHandler
	TransferHandler *handler.TransferHandler
}

func NewContainer(st *store.Store, probe port.Telemetry, logger *config.AppLogger, cache *pkgresponse.ResponseCache) *Container {
	todoSvc := service.NewTodoService(st, probe)

	var invalidator handler.CacheInvalidator

	if cache != nil {
		invalidator = cache
	}

	return &Container{
		Store:           st,
		UseCase:         todoSvc,
		TodoHandler:     handler.NewTodoHandler(todoSvc, logger, invalidator),
		ViewHandler:     handler.NewViewHandler(todoSvc, invalidator),
		TransferHandler: handler.NewTransferHandler(todoSvc, logger, invalidator),
	}
}
