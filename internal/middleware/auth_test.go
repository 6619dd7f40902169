package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret-000000000000"

func setupRouterWithAuth(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		userID, _ := util.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": util.GetUserRole(c)})
	})
	return r
}

func TestAuthMissingHeader(t *testing.T) {
	r := setupRouterWithAuth(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	r := setupRouterWithAuth(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthValidToken(t *testing.T) {
	r := setupRouterWithAuth(t)

	token, err := util.GenerateToken(7, "seven@uni.edu", model.RoleStudent, testSecret, time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
}

func TestAuthExpiredToken(t *testing.T) {
	r := setupRouterWithAuth(t)

	token, err := util.GenerateToken(7, "seven@uni.edu", model.RoleStudent, testSecret, -time.Minute)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	call := func(role string) int {
		r := gin.New()
		r.GET("/rep", func(c *gin.Context) {
			if role != "" {
				c.Set("userRole", role)
			}
			c.Next()
		}, RequireRole(model.RoleRep), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/rep", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call(model.RoleRep))
	// Admin passes every role gate.
	assert.Equal(t, http.StatusOK, call(model.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, call(model.RoleStudent))
	assert.Equal(t, http.StatusForbidden, call(""))
}

func TestTryAuthAnonymousPasses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/open", TryAuth(testSecret), func(c *gin.Context) {
		_, ok := util.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
