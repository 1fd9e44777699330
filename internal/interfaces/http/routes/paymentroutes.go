package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type PaymentRouteConfig struct {
	PaymentHandler       *handlers.PaymentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	payments := api.Group("/payments")
	payments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		payments.POST("", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.Create)
		payments.GET("", cfg.PermissionMiddleware.RequirePermission("payments", "read"), cfg.PaymentHandler.List)

		payments.POST("/:id/paid", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.MarkPaid)
		payments.POST("/:id/failed", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.MarkFailed)
		payments.POST("/:id/refund", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.Refund)
		payments.POST("/:id/retry", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.Retry)

		payments.GET("/:id", cfg.PermissionMiddleware.RequirePermission("payments", "read"), cfg.PaymentHandler.Get)
		payments.DELETE("/:id", cfg.PermissionMiddleware.RequirePermission("payments", "write"), cfg.PaymentHandler.Delete)
	}
}
