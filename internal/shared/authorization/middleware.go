package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitout/internal/shared/constants"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(constants.ContextKeyUserRole)
		if userRole != string(RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireWriter rejects requests from roles without write permission.
func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !userRole.CanWrite() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "write access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
