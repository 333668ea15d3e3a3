package routes

import (
	"museworks_backend/internal/handlers"
	"museworks_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует HTTP API, health и metrics.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authMiddleware gin.HandlerFunc,
) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.RatingHandler.RegisterRoutes(api, authMiddleware)
		appHandlers.ReviewHandler.RegisterRoutes(api, authMiddleware)
		appHandlers.WorkHandler.RegisterRoutes(api)
		appHandlers.SearchHandler.RegisterRoutes(api)
	}

	appHandlers.HealthHandler.RegisterRoutes(ginRouter)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
