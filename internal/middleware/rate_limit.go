// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/eshopdev/eshop-backend/internal/utils"
)

const clientIdleTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP. Idle entries are
// evicted so the map does not grow with every address ever seen.
type ipLimiter struct {
	mtx     sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   limit,
		burst:   burst,
	}
	go l.evictIdle()
	return l
}

func (l *ipLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		l.mtx.Lock()
		for ip, c := range l.clients {
			if time.Since(c.lastSeen) > clientIdleTTL {
				delete(l.clients, ip)
			}
		}
		l.mtx.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

var (
	generalLimiter = newIPLimiter(rate.Every(time.Second), 20)
	authLimiter    = newIPLimiter(rate.Every(6*time.Second), 10)
	uploadLimiter  = newIPLimiter(rate.Every(6*time.Second), 10)
)

// GeneralRateLimit applies the API-wide per-IP limit.
func GeneralRateLimit() gin.HandlerFunc {
	return generalLimiter.handler()
}

// AuthRateLimit is stricter; it guards credential endpoints against
// brute force attempts.
func AuthRateLimit() gin.HandlerFunc {
	return authLimiter.handler()
}

// UploadRateLimit guards the media upload endpoint.
func UploadRateLimit() gin.HandlerFunc {
	return uploadLimiter.handler()
}
