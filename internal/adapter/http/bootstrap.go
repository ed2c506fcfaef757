package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"todolist/internal/adapter/http/routes"
	"todolist/internal/adapter/storage/badger"
	"todolist/internal/adapter/storage/memory"
	"todolist/internal/adapter/storage/sqlite"
	"todolist/internal/core/port"
	"todolist/internal/core/store"
	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
	pkgresponse "todolist/pkg/response"
)

// OpenStorage builds the configured collection storage collaborator.
func OpenStorage(appConfig *config.AppConfig) (port.CollectionStorage, error) {
	switch appConfig.StorageBackend {
	case "badger":
		return badger.Open(appConfig.DataPath)
	case "sqlite":
		return sqlite.Open(appConfig.DatabasePath, appConfig.MigrationsPath)
	case "memory":
		return memory.New(), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", appConfig.StorageBackend)
}

// StartServer restores the collection, wires the container and serves until
// the listener fails or ctx is cancelled, then drains in-flight requests and
// closes the storage.
func StartServer(ctx context.Context, metrics *telemetry.AppMetrics, logger *config.AppLogger, appConfig *config.AppConfig) error {
	storage, err := OpenStorage(appConfig)

	if err != nil {
		return err
	}

	probe := telemetry.NewOTelProbe("todolist", logger.Zap(), metrics)

	st := store.New(telemetry.NewInstrumentedStorage(storage, appConfig.StorageBackend, probe), logger.Zap())

	if err := st.Open(ctx); err != nil {
		return err
	}

	defer st.Close()

	var cache *pkgresponse.ResponseCache

	if appConfig.CacheEnabled {
		cache = pkgresponse.NewResponseCache(appConfig.CacheTTL, logger, metrics)
	}

	container := NewContainer(st, probe, logger, cache)

	router := routes.SetupRouter(routes.HandlersConfig{
		TodoHandler:     container.TodoHandler,
		ViewHandler:     container.ViewHandler,
		TransferHandler: container.TransferHandler,
	}, metrics, logger, cache, appConfig)

	logger.Info(ctx, "Server starting",
		zap.String("port", appConfig.Port),
		zap.String("storage", appConfig.StorageBackend),
		zap.String("environment", appConfig.Environment),
		zap.Bool("cache_enabled", appConfig.CacheEnabled),
	)

	srv := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "Server failed", zap.Error(err))
			return err
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "Server shutdown failed", zap.Error(err))
		return err
	}

	logger.Info(shutdownCtx, "Server stopped")

	return nil
}
