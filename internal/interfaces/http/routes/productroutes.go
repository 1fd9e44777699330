package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type ProductRouteConfig struct {
	ProductHandler       *handlers.ProductHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupProductRoutes(api *gin.RouterGroup, cfg *ProductRouteConfig) {
	products := api.Group("/products")
	products.Use(cfg.AuthMiddleware.RequireAuth())
	{
		products.POST("", cfg.PermissionMiddleware.RequirePermission("products", "write"), cfg.ProductHandler.Create)
		products.GET("", cfg.PermissionMiddleware.RequirePermission("products", "read"), cfg.ProductHandler.List)

		products.PATCH("/:id/active", cfg.PermissionMiddleware.RequirePermission("products", "write"), cfg.ProductHandler.SetActive)

		products.GET("/:id", cfg.PermissionMiddleware.RequirePermission("products", "read"), cfg.ProductHandler.Get)
		products.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("products", "write"), cfg.ProductHandler.Update)
		products.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("products", "write"), cfg.ProductHandler.Delete)
	}
}
