package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/pkg/logger"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireSession authenticates the bearer token against the session store and
// injects the identity into the request context.
// It does not perform RBAC checks; those belong to internal/rbac.
func RequireSession(s *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := s.Authenticate(c.Request.Context(), strings.TrimPrefix(raw, bearerPrefix))
		if err != nil {
			if apperror.SafeCode(err) >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
			c.AbortWithStatusJSON(apperror.SafeCode(err), gin.H{"error": apperror.SafeMessage(err)})
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		// Also store on gin context for handler convenience and request logs.
		c.Set(logger.UserIDKey, id.User.ID)
		c.Next()
	}
}
