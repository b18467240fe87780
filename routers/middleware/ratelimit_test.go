package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/siteshield/turnstile/config"
	"github.com/stretchr/testify/assert"
)

func TestFailureRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(FailureRateLimitMiddleware())
	router.GET("/gated", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	limit := config.TurnstileConfig().FailureRateLimit

	// All requests share httptest's fixed RemoteAddr, so they count
	// against a single IP bucket.
	for i := 0; i < limit; i++ {
		req := httptest.NewRequest("GET", "/gated", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code, "request %d within limit", i)
	}

	req := httptest.NewRequest("GET", "/gated", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusTooManyRequests, res.Code)
	assert.Contains(t, res.Body.String(), "retry_after")
}
