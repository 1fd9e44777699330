package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
	"fitout/internal/shared/authorization"
)

type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupUserRoutes configures user management routes. Account administration
// is admin-only; profile and password routes act on the authenticated user.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.PUT("/me/profile", cfg.UserHandler.UpdateProfile)
		users.PUT("/me/password", cfg.UserHandler.ChangePassword)

		users.POST("", authorization.RequireAdmin(), cfg.UserHandler.Create)
		users.GET("", authorization.RequireAdmin(), cfg.UserHandler.List)
		users.PATCH("/:id/role", authorization.RequireAdmin(), cfg.UserHandler.ChangeRole)
		users.PATCH("/:id/active", authorization.RequireAdmin(), cfg.UserHandler.SetActive)
		users.GET("/:id", authorization.RequireAdmin(), cfg.UserHandler.Get)
		users.DELETE("/:id", authorization.RequireAdmin(), cfg.UserHandler.Delete)
	}
}
