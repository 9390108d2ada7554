package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ipca-wpd/backend/internal/auth"
	"github.com/ipca-wpd/backend/pkg/response"
)

const (
	// ContextAdminID is the key for the authenticated admin ID in gin context.
	ContextAdminID = "admin_id"
	// ContextAdminEmail is the key for the authenticated admin email in gin context.
	ContextAdminEmail = "admin_email"
)

// AdminJWT returns a middleware that validates the bearer token and sets the
// admin identity in context.
func AdminJWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "Authorization token missing or invalid")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "Token is invalid or expired")
			c.Abort()
			return
		}
		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)
		c.Next()
	}
}
