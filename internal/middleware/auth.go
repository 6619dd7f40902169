package middleware

import (
	"net/http"
	"strings"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, util.Response{
		Success: false,
		Message: message,
	})
}

// Auth requires a valid access token and loads the caller's identity into the
// context.
func Auth(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := util.ParseToken(parts[1], accessSecret)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Next()
	}
}

// TryAuth loads identity when a valid token is present but lets anonymous
// requests through. Used on public reads that personalize when logged in.
func TryAuth(accessSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := util.ParseToken(parts[1], accessSecret); err == nil {
					c.Set("userId", claims.UserID)
					c.Set("userEmail", claims.Email)
					c.Set("userRole", claims.Role)
				}
			}
		}
		c.Next()
	}
}

// RequireRole allows only the listed roles. Admin passes every gate.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		role := util.GetUserRole(c)
		if role == model.RoleAdmin || allowed[role] {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, util.Response{
			Success: false,
			Message: "You do not have permission to perform this action",
		})
	}
}
