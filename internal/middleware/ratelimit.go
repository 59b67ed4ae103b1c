package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/devlog-dev/devlog/internal/types"
)

// RateLimiter throttles clients by IP. It is only mounted on the
// credential endpoints, where unbounded retries would otherwise make
// password guessing cheap.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*clientLimiter),
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !rl.allow(ctx.ClientIP()) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Error: "Too many requests",
				Kind:  types.KindRateLimited,
			})
			return
		}
		ctx.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastAccess = now

	// Drop entries idle for over an hour so the map stays bounded.
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastAccess) > time.Hour {
			delete(rl.limiters, key)
		}
	}

	return cl.limiter.Allow()
}
