package routes

import (
	"github.com/gin-gonic/gin"

	"fitout/internal/infrastructure/ratelimit"
	issuehandlers "fitout/internal/interfaces/http/handlers/issue"
	"fitout/internal/interfaces/http/middleware"
)

type IssueRouteConfig struct {
	IssueHandler         *issuehandlers.Handler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	RateLimiter          *middleware.RateLimitMiddleware
}

// SetupIssueRoutes configures issue and conversation routes. The AI drafting
// endpoints are rate limited per user to bound LLM and SMTP usage.
func SetupIssueRoutes(api *gin.RouterGroup, cfg *IssueRouteConfig) {
	aiLimit := ratelimit.Config{RequestsPerMinute: 10, RequestsPerHour: 120}

	issues := api.Group("/issues")
	issues.Use(cfg.AuthMiddleware.RequireAuth())
	{
		issues.POST("", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.Create)
		issues.GET("", cfg.PermissionMiddleware.RequirePermission("issues", "read"), cfg.IssueHandler.List)
		issues.POST("/bulk-activate", cfg.RateLimiter.LimitByUser("ai", aiLimit), cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.BulkStartConversations)

		issues.GET("/:id/thread", cfg.PermissionMiddleware.RequirePermission("issues", "read"), cfg.IssueHandler.GetThread)
		issues.POST("/:id/ai/activate", cfg.RateLimiter.LimitByUser("ai", aiLimit), cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.StartConversation)
		issues.POST("/:id/ai/reply", cfg.RateLimiter.LimitByUser("ai", aiLimit), cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.DraftReply)
		issues.POST("/:id/messages", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.SendMessage)
		issues.POST("/:id/messages/:message_id/approve", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.ApproveReply)
		issues.POST("/:id/messages/:message_id/reject", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.RejectReply)
		issues.PATCH("/:id/priority", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.ChangePriority)
		issues.POST("/:id/close", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.Close)

		issues.GET("/:id", cfg.PermissionMiddleware.RequirePermission("issues", "read"), cfg.IssueHandler.Get)
		issues.PUT("/:id", cfg.PermissionMiddleware.RequirePermission("issues", "write"), cfg.IssueHandler.Update)
	}
}
