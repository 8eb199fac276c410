package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fundihub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func logoutRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/users/logout", LogoutHandler)
	return r
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	var revokedHash string
	var revokedTTL time.Duration
	revokeToken = func(_ context.Context, tokenHash string, ttl time.Duration) error {
		revokedHash = tokenHash
		revokedTTL = ttl
		return nil
	}
	defer func() { revokeToken = utils.RevokeToken }()

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	w := httptest.NewRecorder()
	logoutRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, utils.HashToken("some.jwt.token"), revokedHash)
	assert.Equal(t, revokeTTL, revokedTTL)
}

func TestLogoutWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	w := httptest.NewRecorder()
	logoutRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutRevocationFailure(t *testing.T) {
	revokeToken = func(context.Context, string, time.Duration) error {
		return errors.New("redis unavailable")
	}
	defer func() { revokeToken = utils.RevokeToken }()

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	w := httptest.NewRecorder()
	logoutRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
