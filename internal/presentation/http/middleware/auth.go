package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/quotedesk-api/internal/presentation/http/dto/response"
	"github.com/sangkips/quotedesk-api/pkg/utils"
)

// OperatorKey is the context key holding the authenticated token subject
const OperatorKey = "operator"

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(OperatorKey, claims.Subject)
		c.Next()
	}
}

// RequireAuthFor applies auth only to the given HTTP methods. Reads stay
// public.
func RequireAuthFor(auth gin.HandlerFunc, methods ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, m := range methods {
			if c.Request.Method == m {
				auth(c)
				return
			}
		}
		c.Next()
	}
}

// GetOperator returns the authenticated token subject, if any
func GetOperator(c *gin.Context) string {
	return c.GetString(OperatorKey)
}
