package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catering/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTokens(t *testing.T) *auth.Tokens {
	tokens, err := auth.NewTokens("test-secret-key-for-testing-only")
	require.NoError(t, err)
	return tokens
}

func protectedRouter(tokens *auth.Tokens, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	if len(roles) > 0 {
		router.Use(RequireRole(zap.NewNop(), roles...))
	}
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":    c.GetString(auth.CtxUserID),
			"userEmail": c.GetString(auth.CtxEmail),
		})
	})
	return router
}

func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	router := protectedRouter(newTokens(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := protectedRouter(newTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := protectedRouter(newTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer invalid_token_xyz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.GenerateToken("test-user-id", "test@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	router := protectedRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test-user-id")
}

func TestAuthMiddleware_SessionCookie(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.GenerateToken("cookie-user", "c@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	router := protectedRouter(tokens)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cookie-user")
}

func TestRequireRole(t *testing.T) {
	tokens := newTokens(t)
	router := protectedRouter(tokens, auth.RoleAdmin)

	editor, _ := tokens.GenerateToken("u1", "e@example.com", "EDITOR")
	admin, _ := tokens.GenerateToken("u2", "a@example.com", auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+editor)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
