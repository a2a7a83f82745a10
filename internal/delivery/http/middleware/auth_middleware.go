package middleware

import (
	"net/http"
	"strings"

	"reliableteam-site/internal/delivery/http/response"
	"reliableteam-site/internal/domain"
	"reliableteam-site/pkg/auth"
	"reliableteam-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware admits requests carrying a valid staff bearer token.
func StaffAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if authHeader == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Bearer token required", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseStaffToken(secret, tokenString)
		if err != nil {
			logger.Log.Warn("Staff token rejected", "request_id", response.RequestID(c), "ip", c.ClientIP(), "error", err)
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyStaffSubject), claims.Subject)
		c.Set(string(domain.KeyStaffEmail), claims.Email)

		c.Next()
	}
}
