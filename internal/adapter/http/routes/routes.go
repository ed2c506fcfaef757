package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todolist/internal/adapter/http/handler"
	"todolist/internal/core/telemetry"
	"todolist/pkg/config"
	"todolist/pkg/middlewares"
	pkgresponse "todolist/pkg/response"
)

type HandlersConfig struct {
	TodoHandler     *handler.TodoHandler
	ViewHandler     *handler.ViewHandler
	TransferHandler *handler.TransferHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.AppLogger, cache *pkgresponse.ResponseCache, appConfig *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware("todolist"))

	if logger != nil {
		router.Use(middlewares.LoggingMiddleware(logger))
	}

	if metrics != nil {
		router.Use(middlewares.MetricsMiddleware(metrics))
	}

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if cache != nil && appConfig != nil && appConfig.CacheEnabled {
		router.Use(cache.CacheMiddleware())
	}

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests wires the routes without telemetry or caching.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if handlers.TodoHandler != nil {
		todos := router.Group("/todos")
		{
			todos.GET("", handlers.TodoHandler.ListTodos)
			todos.POST("", handlers.TodoHandler.CreateTodo)
			todos.PATCH("/:id", handlers.TodoHandler.UpdateTodo)
			todos.DELETE("/:id", handlers.TodoHandler.DeleteTodo)
			todos.POST("/:id/toggle", handlers.TodoHandler.ToggleTodo)
			todos.POST("/bulk/delete", handlers.TodoHandler.BulkDelete)
			todos.POST("/bulk/toggle", handlers.TodoHandler.BulkToggle)
			todos.POST("/reorder", handlers.TodoHandler.MoveTodo)
			todos.PUT("/order", handlers.TodoHandler.SetOrder)
			todos.GET("/stats", handlers.TodoHandler.GetStats)
			todos.GET("/grouped", handlers.TodoHandler.GetGrouped)
		}
	}

	if handlers.ViewHandler != nil {
		router.GET("/view", handlers.ViewHandler.GetView)
		router.PUT("/view", handlers.ViewHandler.SetView)
	}

	if handlers.TransferHandler != nil {
		router.GET("/export", handlers.TransferHandler.Export)
		router.POST("/import", handlers.TransferHandler.Import)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
