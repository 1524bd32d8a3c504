package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Alvarezzzzz/charlotte-seguridad/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	purgeInterval = 5 * time.Minute
	idleTTL       = 10 * time.Minute
)

// ── Per-IP limiter ────────────────────────────────────────────────────────────

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP. Idle buckets are
// purged on access, at most once per purgeInterval.
type IPRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	every     rate.Limit
	burst     int
	lastPurge time.Time
	now       func() time.Time
}

// NewIPRateLimiter allows limit requests per window for each IP, with a
// burst of limit.
func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	if limit < 1 {
		limit = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		every:    rate.Every(window / time.Duration(limit)),
		burst:    limit,
		now:      time.Now,
	}
}

func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) >= purgeInterval {
		l.purge(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) purge(now time.Time) {
	purged := 0
	for ip, e := range l.limiters {
		if now.Sub(e.lastSeen) > idleTTL {
			delete(l.limiters, ip)
			purged++
		}
	}
	l.lastPurge = now
	if purged > 0 {
		log.Debug().
			Int("entries_purged", purged).
			Int("entries_remaining", len(l.limiters)).
			Msg("rate limiter purged")
	}
}

// Middleware rejects requests over budget with 429 and msg.
func (l *IPRateLimiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// ── Presets ───────────────────────────────────────────────────────────────────

// SessionRateLimiter guards the public session endpoints (login, location,
// guest sessions).
func SessionRateLimiter(perMinute int) gin.HandlerFunc {
	return NewIPRateLimiter(perMinute, time.Minute).
		Middleware("Demasiados intentos. Intente en 1 minuto.")
}

// RateLimiter is the general API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return NewIPRateLimiter(limit, window).
		Middleware("Demasiadas solicitudes. Intente nuevamente en un momento.")
}
