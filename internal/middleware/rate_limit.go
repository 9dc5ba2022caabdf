// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP. Buckets idle for longer
// than staleAfter are dropped by a background sweep so the map cannot grow
// without bound under IP churn.
type ipLimiter struct {
	mtx     sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	sweepInterval = time.Minute
	staleAfter    = 3 * time.Minute
)

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) sweep() {
	for range time.Tick(sweepInterval) {
		l.mtx.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > staleAfter {
				delete(l.buckets, ip)
			}
		}
		l.mtx.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipLimiter) middleware(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			logrus.WithFields(logrus.Fields{
				"ip":    ip,
				"scope": scope,
				"path":  c.Request.URL.Path,
			}).Warn("Rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Shared limiters: a general per-second budget for the whole API, a much
// tighter one for credential endpoints, and a moderate one for image
// uploads.
var (
	generalLimiter = newIPLimiter(rate.Limit(10), 20)            // 10/s sustained
	authLimiter    = newIPLimiter(rate.Every(12*time.Second), 5) // 5/min
	uploadLimiter  = newIPLimiter(rate.Every(6*time.Second), 10) // 10/min
)

func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.middleware("general")
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware("auth")
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware("upload")
}
