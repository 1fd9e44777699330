package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitout/internal/infrastructure/ratelimit"
	"fitout/internal/shared/constants"
	"fitout/internal/shared/logger"
)

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string, config ratelimit.Config) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

func (f *fakeLimiter) GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, nil
}

func (f *fakeLimiter) Reset(ctx context.Context, key string) error { return nil }

func rateLimitRequest(t *testing.T, limit gin.HandlerFunc, userID *uint) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		if userID != nil {
			c.Set(constants.ContextKeyUserID, *userID)
		}
	}, limit, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_LimitByUser(t *testing.T) {
	t.Run("keys the counter on the authenticated user", func(t *testing.T) {
		limiter := &fakeLimiter{allow: true}
		m := NewRateLimitMiddleware(limiter, logger.NewLogger())
		userID := uint(7)

		w := rateLimitRequest(t, m.LimitByUser("ai", ratelimit.Config{RequestsPerMinute: 10}), &userID)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ai:7", limiter.keys[0])
	})

	t.Run("falls back to client IP without a user", func(t *testing.T) {
		limiter := &fakeLimiter{allow: true}
		m := NewRateLimitMiddleware(limiter, logger.NewLogger())

		w := rateLimitRequest(t, m.LimitByUser("ai", ratelimit.Config{RequestsPerMinute: 10}), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "ai:192.0.2.1", limiter.keys[0])
	})

	t.Run("rejects over-limit requests", func(t *testing.T) {
		limiter := &fakeLimiter{allow: false}
		m := NewRateLimitMiddleware(limiter, logger.NewLogger())
		userID := uint(7)

		w := rateLimitRequest(t, m.LimitByUser("ai", ratelimit.Config{RequestsPerMinute: 10}), &userID)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("allows the request when the limiter store errors", func(t *testing.T) {
		limiter := &fakeLimiter{err: fmt.Errorf("redis: connection refused")}
		m := NewRateLimitMiddleware(limiter, logger.NewLogger())
		userID := uint(7)

		w := rateLimitRequest(t, m.LimitByUser("ai", ratelimit.Config{RequestsPerMinute: 10}), &userID)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimitMiddleware_LimitByIP(t *testing.T) {
	limiter := &fakeLimiter{allow: true}
	m := NewRateLimitMiddleware(limiter, logger.NewLogger())

	w := rateLimitRequest(t, m.LimitByIP("auth", ratelimit.Config{RequestsPerMinute: 10}), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "auth:192.0.2.1", limiter.keys[0])
}
