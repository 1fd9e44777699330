package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/infrastructure/ratelimit"
	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware
}

// SetupAuthRoutes configures authentication routes. Login and refresh are
// rate limited per IP to slow down credential stuffing.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	loginLimit := ratelimit.Config{RequestsPerMinute: 10, RequestsPerHour: 60}

	auth := api.Group("/auth")
	{
		auth.POST("/login", cfg.RateLimiter.LimitByIP("auth", loginLimit), cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.RateLimiter.LimitByIP("auth", loginLimit), cfg.AuthHandler.Refresh)
		auth.GET("/me", cfg.AuthMiddleware.RequireAuth(), cfg.AuthHandler.Me)
	}
}
