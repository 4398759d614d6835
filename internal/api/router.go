package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures the HTTP routes.
func SetupRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), AccessLog(logger), gin.Recovery())

	api := r.Group("/api")
	{
		api.POST("/generate-grocery-list", h.GenerateGroceryList)
		api.GET("/grocery-lists", h.ListGroceryLists)
		api.GET("/grocery-lists/:id", h.GetGroceryList)
		api.GET("/metrics/usage", h.GetUsage)
		api.GET("/health", h.Health)
	}

	return r
}
