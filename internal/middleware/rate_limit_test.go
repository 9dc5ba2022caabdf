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

func TestIPLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(l *ipLimiter) *gin.Engine {
		r := gin.New()
		r.Use(l.middleware("test"))
		r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	hit := func(r *gin.Engine, ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("returns 429 once the burst is spent", func(t *testing.T) {
		// Refill is far too slow to matter within the test.
		r := newRouter(newIPLimiter(rate.Every(time.Hour), 2))

		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1"))
	})

	t.Run("budgets are tracked per IP", func(t *testing.T) {
		r := newRouter(newIPLimiter(rate.Every(time.Hour), 1))

		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.1"))
		assert.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1"))
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.2"))
	})
}
