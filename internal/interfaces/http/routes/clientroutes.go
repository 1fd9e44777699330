package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type ClientRouteConfig struct {
	ClientHandler        *handlers.ClientHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupClientRoutes(api *gin.RouterGroup, cfg *ClientRouteConfig) {
	clients := api.Group("/clients")
	clients.Use(cfg.AuthMiddleware.RequireAuth())
	{
		clients.POST("", cfg.PermissionMiddleware.RequirePermission("clients", "write"), cfg.ClientHandler.Create)
		clients.GET("", cfg.PermissionMiddleware.RequirePermission("clients", "read"), cfg.ClientHandler.List)
		clients.GET("/:id", cfg.PermissionMiddleware.RequirePermission("clients", "read"), cfg.ClientHandler.Get)
		clients.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("clients", "write"), cfg.ClientHandler.Update)
		clients.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("clients", "write"), cfg.ClientHandler.Delete)
	}
}
