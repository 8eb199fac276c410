package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ipContext(remoteAddr string, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = remoteAddr
	for k, v := range headers {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestGetClientIP(t *testing.T) {
	c := ipContext("10.0.0.9:53211", nil)
	assert.Equal(t, "10.0.0.9", getClientIP(c))

	c = ipContext("10.0.0.9:53211", map[string]string{"X-Real-IP": "41.90.1.7"})
	assert.Equal(t, "41.90.1.7", getClientIP(c))

	c = ipContext("10.0.0.9:53211", map[string]string{
		"X-Forwarded-For": "41.90.1.7, 172.16.0.2, 10.0.0.1",
		"X-Real-IP":       "172.16.0.2",
	})
	assert.Equal(t, "41.90.1.7", getClientIP(c), "forwarded-for wins over real-ip")

	c = ipContext("bad-remote-addr", nil)
	assert.Equal(t, "bad-remote-addr", getClientIP(c))
}
