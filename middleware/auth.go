package middleware

import (
	"net/http"
	"strings"

	"fundihub/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token, rejects revoked tokens and
// stores the requester identity in the context. When roles are given, the
// token's role claim must match one of them.
func JWTAuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		default:
			// WebSocket clients cannot set headers from a browser; they
			// pass the token as a query parameter instead.
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		requesterID, requesterRole, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || requesterID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		if utils.IsTokenRevoked(c.Request.Context(), utils.HashToken(tokenString)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if strings.EqualFold(role, requesterRole) {
					allowed = true
					break
				}
			}
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
				return
			}
		}

		c.Set("requesterID", requesterID)
		c.Set("requesterRole", strings.ToLower(requesterRole))
		c.Next()
	}
}
