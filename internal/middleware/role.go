package middleware

import (
	"net/http"
	"slices"

	"catering/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole must run after AuthMiddleware. Requests whose session role is
// not listed get 403.
func RequireRole(log *zap.Logger, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(auth.CtxRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role missing"})
			return
		}
		if !slices.Contains(allowed, role) {
			log.Warn("role rejected",
				zap.String("user_id", c.GetString(auth.CtxUserID)),
				zap.String("role", role),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
