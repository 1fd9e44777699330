package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type OrderRouteConfig struct {
	OrderHandler         *handlers.OrderHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupOrderRoutes(api *gin.RouterGroup, cfg *OrderRouteConfig) {
	orders := api.Group("/orders")
	orders.Use(cfg.AuthMiddleware.RequireAuth())
	{
		orders.POST("", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.Create)
		orders.GET("", cfg.PermissionMiddleware.RequirePermission("orders", "read"), cfg.OrderHandler.List)

		orders.PUT("/:id/items", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.ReplaceItems)
		orders.POST("/:id/place", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.Place)
		orders.POST("/:id/cancel", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.Cancel)
		orders.PATCH("/:id/status", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.ChangeStatus)
		orders.PATCH("/:id/notes", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.SetNotes)

		orders.GET("/:id", cfg.PermissionMiddleware.RequirePermission("orders", "read"), cfg.OrderHandler.Get)
		orders.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("orders", "write"), cfg.OrderHandler.Delete)
	}
}
