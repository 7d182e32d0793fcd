// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter keeps one token bucket per client IP. Buckets that have been
// idle longer than bucketIdleAge are dropped; an evicted client just gets a
// fresh, full bucket on its next request.
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

const bucketIdleAge = 3 * time.Minute

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.evictIdle()
	return l
}

func (l *ipLimiter) evictIdle() {
	for range time.Tick(time.Minute) {
		l.mtx.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > bucketIdleAge {
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

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests. Please slow down and try again.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Storefront tiers: browsing the catalog is generous, credential endpoints
// are tight, order placement and image uploads sit in between.
var (
	browseLimiter   = newIPLimiter(rate.Every(time.Second), 20)
	authLimiter     = newIPLimiter(rate.Every(time.Minute), 5)
	checkoutLimiter = newIPLimiter(rate.Every(time.Minute), 10)
	uploadLimiter   = newIPLimiter(rate.Every(time.Minute), 10)
)

func GeneralRateLimit() gin.HandlerFunc {
	return browseLimiter.middleware()
}

func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.middleware()
}

// CheckoutRateLimit throttles the order-placement and payment endpoints so
// a misbehaving client cannot hammer stock decrements.
func CheckoutRateLimit() gin.HandlerFunc {
	return checkoutLimiter.middleware()
}

func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.middleware()
}
