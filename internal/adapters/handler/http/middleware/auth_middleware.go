package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	authorizationType   = "Bearer"
	ContextOwnerIDKey   = "ownerID"
)

// TokenValidator resolves a bearer token to the owner id it was issued for.
type TokenValidator interface {
	ValidateToken(token string) (int64, error)
}

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != authorizationType {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		ownerID, err := tokens.ValidateToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextOwnerIDKey, ownerID)

		c.Next()
	}
}

func GetOwnerID(c *gin.Context) (int64, bool) {
	id, exists := c.Get(ContextOwnerIDKey)
	if !exists {
		return 0, false
	}
	ownerID, ok := id.(int64)
	return ownerID, ok && ownerID > 0
}
