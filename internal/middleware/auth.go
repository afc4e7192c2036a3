package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/planboard/planboard/internal/authz"
	"github.com/planboard/planboard/internal/utils"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthRequired resolves the bearer token into an actor identity. Downstream
// handlers trust the resolved (user_id, role) absolutely; there is no
// re-verification.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// AdminRequired gates a route group to the Admin role. Fine-grained
// decisions live in the authz engine; this is only a cheap outer gate for
// purely administrative surfaces.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role != string(authz.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID gets the current user ID from context.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetEmail gets the current user email from context.
func GetEmail(c *gin.Context) string {
	if email, exists := c.Get(ContextEmail); exists {
		return email.(string)
	}
	return ""
}

// GetRole gets the current user role from context.
func GetRole(c *gin.Context) string {
	if role, exists := c.Get(ContextRole); exists {
		return role.(string)
	}
	return ""
}

// Actor builds the authz actor for the current request. An unparsable role
// yields an actor with an invalid role, which the engine denies.
func Actor(c *gin.Context) authz.Actor {
	role, _ := authz.ParseRole(GetRole(c))
	return authz.Actor{UserID: GetUserID(c), Role: role}
}
