package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type VendorRouteConfig struct {
	VendorHandler        *handlers.VendorHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupVendorRoutes(api *gin.RouterGroup, cfg *VendorRouteConfig) {
	vendors := api.Group("/vendors")
	vendors.Use(cfg.AuthMiddleware.RequireAuth())
	{
		vendors.POST("", cfg.PermissionMiddleware.RequirePermission("vendors", "write"), cfg.VendorHandler.Create)
		vendors.GET("", cfg.PermissionMiddleware.RequirePermission("vendors", "read"), cfg.VendorHandler.List)

		vendors.PATCH("/:id/rating", cfg.PermissionMiddleware.RequirePermission("vendors", "write"), cfg.VendorHandler.SetRating)
		vendors.PATCH("/:id/active", cfg.PermissionMiddleware.RequirePermission("vendors", "write"), cfg.VendorHandler.SetActive)

		vendors.GET("/:id", cfg.PermissionMiddleware.RequirePermission("vendors", "read"), cfg.VendorHandler.Get)
		vendors.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("vendors", "write"), cfg.VendorHandler.Update)
		vendors.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("vendors", "write"), cfg.VendorHandler.Delete)
	}
}
