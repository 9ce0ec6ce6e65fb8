package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"example.com/volunteerhub/internal/auth"
)

// Keys under which the authenticated actor is stored in the gin context.
const (
	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"
)

// JWTAuth validates the bearer token and stores the actor's id and role in
// the request context.
func JWTAuth(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}

		claims, err := jwt.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ActorIDKey, claims.Subject)
		c.Set(ActorRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose token carries a different role. Must
// run after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ActorRoleKey) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor's id from the gin context.
func ActorID(c *gin.Context) string {
	return c.GetString(ActorIDKey)
}
