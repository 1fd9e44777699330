// Package http assembles the Gin engine for the API server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitout/internal/infrastructure/config"
	"fitout/internal/interfaces/http/middleware"
	"fitout/internal/interfaces/http/routes"
	"fitout/internal/shared/constants"
	"fitout/internal/shared/logger"
)

// NewRouter builds the Gin engine with the full middleware chain and all
// route groups mounted under the API version prefix.
func NewRouter(cfg *config.Config, c *Container, log logger.Interface) *gin.Engine {
	gin.SetMode(resolveGinMode(cfg.Server.Mode))

	engine := gin.New()
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group(constants.APIVersionPrefix)

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.AuthHandler,
		AuthMiddleware: c.AuthMiddleware,
		RateLimiter:    c.RateLimitMiddleware,
	})
	routes.SetupClientRoutes(api, &routes.ClientRouteConfig{
		ClientHandler:        c.ClientHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupApartmentRoutes(api, &routes.ApartmentRouteConfig{
		ApartmentHandler:     c.ApartmentHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupVendorRoutes(api, &routes.VendorRouteConfig{
		VendorHandler:        c.VendorHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupProductRoutes(api, &routes.ProductRouteConfig{
		ProductHandler:       c.ProductHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupOrderRoutes(api, &routes.OrderRouteConfig{
		OrderHandler:         c.OrderHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupDeliveryRoutes(api, &routes.DeliveryRouteConfig{
		DeliveryHandler:      c.DeliveryHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler:       c.PaymentHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
	})
	routes.SetupIssueRoutes(api, &routes.IssueRouteConfig{
		IssueHandler:         c.IssueHandler,
		AuthMiddleware:       c.AuthMiddleware,
		PermissionMiddleware: c.PermissionMiddleware,
		RateLimiter:          c.RateLimitMiddleware,
	})
	routes.SetupNotificationRoutes(api, &routes.NotificationRouteConfig{
		NotificationHandler: c.NotificationHandler,
		AuthMiddleware:      c.AuthMiddleware,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:    c.UserHandler,
		AuthMiddleware: c.AuthMiddleware,
	})

	return engine
}

func resolveGinMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
