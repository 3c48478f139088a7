package middleware

// Fixed-window request counters keyed by client IP, kept in process memory.
// Two limiters exist: a strict one in front of the login endpoint and a wide
// one covering the whole API. Counters for idle IPs are swept every five
// minutes so the maps cannot grow without bound.

import (
	"net/http"
	"sync"
	"time"

	"github.com/AbyssT34/Ecommerce-Shop/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type windowCounter struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

type ipLimiter struct {
	mu      sync.Mutex
	seen    map[string]*windowCounter
	limit   int
	window  time.Duration
	message string
}

var (
	limitersMu sync.Mutex
	limiters   []*ipLimiter
)

func newIPLimiter(limit int, window time.Duration, message string) *ipLimiter {
	l := &ipLimiter{
		seen:    make(map[string]*windowCounter),
		limit:   limit,
		window:  window,
		message: message,
	}
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	wc, ok := l.seen[ip]
	if !ok {
		wc = &windowCounter{}
		l.seen[ip] = wc
	}
	l.mu.Unlock()

	wc.mu.Lock()
	defer wc.mu.Unlock()

	now := time.Now()
	if now.After(wc.windowEnd) {
		wc.count = 0
		wc.windowEnd = now.Add(l.window)
	}
	wc.count++
	return wc.count <= l.limit
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// sweep drops counters whose window has already closed.
func (l *ipLimiter) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, wc := range l.seen {
		wc.mu.Lock()
		expired := now.After(wc.windowEnd)
		wc.mu.Unlock()
		if expired {
			delete(l.seen, ip)
			removed++
		}
	}
	return removed
}

// LoginRateLimiter guards the login endpoint against credential stuffing:
// 20 attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newIPLimiter(20, time.Minute, "Too many login attempts. Try again in 1 minute.").handler()
}

// RateLimiter caps overall request volume per IP across the API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newIPLimiter(limit, window, "Too many requests. Try again shortly.").handler()
}

const sweepInterval = 5 * time.Minute

func init() {
	go sweepLoop()
}

func sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		limitersMu.Lock()
		active := make([]*ipLimiter, len(limiters))
		copy(active, limiters)
		limitersMu.Unlock()

		total := 0
		for _, l := range active {
			total += l.sweep(now)
		}
		if total > 0 {
			log.Debug().Int("entries_removed", total).Msg("rate limiter sweep")
		}
	}
}
