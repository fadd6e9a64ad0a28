package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/brenosouzaaa/sistema-pizzaria/utils"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps       rate.Limit
	burst     int
	visitors  map[string]*visitor
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

// NewStrictRateLimiter is meant for login and register: a handful of
// attempts, then one every few seconds.
func NewStrictRateLimiter(rps float64, burst int) gin.HandlerFunc {
	return NewRateLimiter(rps, burst).RateLimit()
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > limiterIdleTTL {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.Allow()
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			utils.RespondError(c, http.StatusTooManyRequests, errors.New("too many requests, please wait a moment"))
			c.Abort()
			return
		}
		c.Next()
	}
}
