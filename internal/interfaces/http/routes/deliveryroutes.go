package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type DeliveryRouteConfig struct {
	DeliveryHandler      *handlers.DeliveryHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupDeliveryRoutes(api *gin.RouterGroup, cfg *DeliveryRouteConfig) {
	deliveries := api.Group("/deliveries")
	deliveries.Use(cfg.AuthMiddleware.RequireAuth())
	{
		deliveries.POST("", cfg.PermissionMiddleware.RequirePermission("deliveries", "write"), cfg.DeliveryHandler.Create)
		deliveries.GET("", cfg.PermissionMiddleware.RequirePermission("deliveries", "read"), cfg.DeliveryHandler.List)

		deliveries.PATCH("/:id/status", cfg.PermissionMiddleware.RequirePermission("deliveries", "write"), cfg.DeliveryHandler.ChangeStatus)
		deliveries.PATCH("/:id/schedule", cfg.PermissionMiddleware.RequirePermission("deliveries", "write"), cfg.DeliveryHandler.Reschedule)
		deliveries.PATCH("/:id/notes", cfg.PermissionMiddleware.RequirePermission("deliveries", "write"), cfg.DeliveryHandler.SetNotes)

		deliveries.GET("/:id", cfg.PermissionMiddleware.RequirePermission("deliveries", "read"), cfg.DeliveryHandler.Get)
		deliveries.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("deliveries", "write"), cfg.DeliveryHandler.Delete)
	}
}
