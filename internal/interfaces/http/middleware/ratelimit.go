package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitout/internal/infrastructure/ratelimit"
	"fitout/internal/shared/constants"
	"fitout/internal/shared/logger"
	"fitout/internal/shared/utils"
)

type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// LimitByIP enforces a per-IP rate limit for the given scope. Scope keeps
// counters for different route groups separate.
func (m *RateLimitMiddleware) LimitByIP(scope string, config ratelimit.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.enforce(c, fmt.Sprintf("%s:%s", scope, c.ClientIP()), config)
	}
}

// LimitByUser enforces a per-user rate limit for the given scope. It must
// run after RequireAuth so the user id is on the context; requests without
// one fall back to the client IP.
func (m *RateLimitMiddleware) LimitByUser(scope string, config ratelimit.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			subject = fmt.Sprintf("%v", userID)
		}
		m.enforce(c, fmt.Sprintf("%s:%s", scope, subject), config)
	}
}

func (m *RateLimitMiddleware) enforce(c *gin.Context, key string, config ratelimit.Config) {
	allowed, err := m.limiter.Allow(c.Request.Context(), key, config)
	if err != nil {
		// Redis being down must not take the API with it.
		m.logger.Warnw("rate limit check failed, allowing request", "error", err, "key", key)
		c.Next()
		return
	}

	if !allowed {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
		c.Abort()
		return
	}

	c.Next()
}
