package routes

import (
	"taskhub_backend/internal/handlers"
	"taskhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers, // <-- Принимаем ГОТОВЫЕ хэндлеры
) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProjectHandler.RegisterRoutes(api)
		appHandlers.TaskHandler.RegisterRoutes(api)

		api.GET("/users/me", middleware.AuthMiddleware(), appHandlers.AuthHandler.GetCurrentUser)
	}

	// Prometheus метрики
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
