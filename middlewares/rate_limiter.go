package middlewares

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-till/utils"
	"golang.org/x/time/rate"
)

var errTooManyRequests = errors.New("Terlalu banyak percobaan, silakan tunggu beberapa saat")

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	clients map[string]*rate.Limiter
	mu      sync.Mutex
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		burst:   burst,
		clients: make(map[string]*rate.Limiter),
	}
}

// NewPinRateLimiter membatasi percobaan PIN per menit per IP.
func NewPinRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	return NewRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.clients[ip]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.clients[ip] = l
	}
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			utils.RespondErrorData(c, http.StatusTooManyRequests, errTooManyRequests, nil)
			return
		}
		c.Next()
	}
}
