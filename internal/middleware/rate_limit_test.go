// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestIPLimiterBurst(t *testing.T) {
	l := newIPLimiter(rate.Every(time.Hour), 2)

	assert.True(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))

	// A different client has its own bucket
	assert.True(t, l.allow("10.0.0.2"))
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	l := newIPLimiter(rate.Every(time.Hour), 1)
	r := gin.New()
	r.POST("/checkout", l.middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
