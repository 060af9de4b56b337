package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aura-scheduling/backend/internal/auth"
	"github.com/aura-scheduling/backend/pkg/response"
)

const (
	// ContextUserID is the key for the viewer's user ID (int) in gin context.
	ContextUserID = "user_id"
	// ContextUserEmail is the key for the viewer's email in gin context.
	ContextUserEmail = "user_email"
	// ContextRequestID is the key for the request ID in gin context.
	ContextRequestID = "request_id"
)

// JWT returns a middleware that validates JWT and sets viewer claims in context.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
