package middleware

import (
	"net/http"
	"strings"

	"catering/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts a Bearer token or the session cookie.
func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			return
		}

		c.Set(auth.CtxUserID, claims.UserID)
		c.Set(auth.CtxEmail, claims.Email)
		c.Set(auth.CtxRole, claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
