package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/services"
)

// Context keys set by the authentication middleware
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Authentication validates the bearer token and resolves it to a persisted,
// active user. Handlers read the caller's username and role from the context.
func Authentication(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			logger.WithField("path", c.Request.URL.Path).Warn("Authentication failed: missing or invalid authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Missing or invalid authorization header",
			})
			return
		}

		token := authHeader[len(prefix):]

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, services.ErrUserDisabled) {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":   "inactive_user",
					"message": "Inactive user",
				})
				return
			}
			logger.WithFields(map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			}).Warn("Authentication failed: token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Could not validate credentials",
			})
			return
		}

		c.Set(ContextUsername, user.Username)
		c.Set(ContextRole, user.Role)

		logger.WithFields(map[string]interface{}{
			"username": user.Username,
			"path":     c.Request.URL.Path,
		}).Debug("Authentication successful")

		c.Next()
	}
}

// RequireAdmin rejects callers whose resolved role is not ADMIN. Must run
// after Authentication.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
