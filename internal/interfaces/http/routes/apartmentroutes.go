package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type ApartmentRouteConfig struct {
	ApartmentHandler     *handlers.ApartmentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupApartmentRoutes(api *gin.RouterGroup, cfg *ApartmentRouteConfig) {
	apartments := api.Group("/apartments")
	apartments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		apartments.POST("", cfg.PermissionMiddleware.RequirePermission("apartments", "write"), cfg.ApartmentHandler.Create)
		apartments.GET("", cfg.PermissionMiddleware.RequirePermission("apartments", "read"), cfg.ApartmentHandler.List)

		apartments.PATCH("/:id/status", cfg.PermissionMiddleware.RequirePermission("apartments", "write"), cfg.ApartmentHandler.ChangeStatus)

		apartments.GET("/:id", cfg.PermissionMiddleware.RequirePermission("apartments", "read"), cfg.ApartmentHandler.Get)
		apartments.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("apartments", "write"), cfg.ApartmentHandler.Update)
		apartments.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("apartments", "write"), cfg.ApartmentHandler.Delete)
	}
}
