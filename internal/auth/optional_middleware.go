package auth

import (
	"secreto/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := tokens.VerifyToken(tokenString); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}
