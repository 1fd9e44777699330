package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/interfaces/http/handlers"
	"fitout/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// SetupNotificationRoutes configures notification routes. Notifications are
// scoped to the authenticated user, so no role check is needed.
func SetupNotificationRoutes(api *gin.RouterGroup, cfg *NotificationRouteConfig) {
	notifications := api.Group("/notifications")
	notifications.Use(cfg.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", cfg.NotificationHandler.List)
		notifications.GET("/unread-count", cfg.NotificationHandler.UnreadCount)
		notifications.POST("/read-all", cfg.NotificationHandler.MarkAllRead)
		notifications.POST("/:id/read", cfg.NotificationHandler.MarkRead)
	}
}
