package handlers

import (
	"net/http"
	"strings"
	"time"

	"fundihub/utils"

	"github.com/gin-gonic/gin"
)

// Revoked entries only need to outlive the longest-lived token.
const revokeTTL = 72 * time.Hour

var revokeToken = utils.RevokeToken

// LogoutHandler blacklists the presented bearer token for the remainder of
// its lifetime. The auth middleware already validated it.
func LogoutHandler(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" || tokenString == c.GetHeader("Authorization") {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no token presented"})
		return
	}

	if err := revokeToken(c.Request.Context(), utils.HashToken(tokenString), revokeTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
