package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comfy-credits/backend/internal/core/domain"
	portssvc "github.com/comfy-credits/backend/internal/core/ports/services"
)

// RequireAdmin creates a Gin middleware that loads the authenticated user and
// rejects the request unless they hold the ADMIN role. Must be applied after
// AuthMiddleware. The resolved admin user is stored in the Gin context for
// handlers that need to attribute actions to the actor.
func RequireAdmin(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("RequireAdmin used without authenticated user in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to load user for admin check", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !user.IsAdmin() {
			logger.Warn("Non-admin user attempted admin route")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(adminUserKey, user)
		c.Next()
	}
}

// GetAdminUserFromContext retrieves the admin actor stored by RequireAdmin.
func GetAdminUserFromContext(c *gin.Context) (*domain.User, bool) {
	val, exists := c.Get(adminUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
