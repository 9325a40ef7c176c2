package http

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/skyglance/weather/internal/logger"
)

// clientIPHeaders are consulted in order after X-Forwarded-For
var clientIPHeaders = []string{"X-Real-IP", "CF-Connecting-IP", "True-Client-IP"}

// ClientIP returns the originating client address, honoring the usual proxy
// and CDN headers. X-Forwarded-For may hold "client, proxy1, proxy2"; the
// first entry is the client. The result is safe to retain after the handler
// returns. The headers are caller controlled, so use it for geolocation and
// logging only.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return strings.Clone(ip)
		}
	}
	for _, h := range clientIPHeaders {
		if v := strings.TrimSpace(c.Get(h)); v != "" {
			return strings.Clone(v)
		}
	}
	return c.IP()
}

// RequestLogger logs every request with its latency
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		latency := float64(time.Since(start).Microseconds()) / 1000
		log.HTTPRequest(c.Method(), c.Path(), status, latency, ClientIP(c))
		return err
	}
}

// IPRateLimiter manages per-IP token buckets. Clients are keyed on the
// connection address as fiber reports it (c.IP), never on client-supplied
// forwarding headers; behind a proxy configure fiber's ProxyHeader together
// with TrustedProxies.
type IPRateLimiter struct {
	limiters sync.Map // ip -> *visitor
	rate     rate.Limit
	burst    int
	log      *logger.Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanoseconds
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
		log:   log,
	}
}

func (i *IPRateLimiter) getVisitor(ip string) *visitor {
	if v, ok := i.limiters.Load(ip); ok {
		return v.(*visitor)
	}
	v, _ := i.limiters.LoadOrStore(ip, &visitor{limiter: rate.NewLimiter(i.rate, i.burst)})
	return v.(*visitor)
}

// Allow reports whether ip may make a request now
func (i *IPRateLimiter) Allow(ip string) bool {
	v := i.getVisitor(ip)
	v.lastSeen.Store(time.Now().UnixNano())
	return v.limiter.Allow()
}

// Evict drops limiters unused for longer than idle and returns how many were removed
func (i *IPRateLimiter) Evict(idle time.Duration) int {
	cutoff := time.Now().Add(-idle).UnixNano()
	removed := 0
	i.limiters.Range(func(key, value any) bool {
		if value.(*visitor).lastSeen.Load() < cutoff {
			i.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartJanitor evicts idle limiters every interval until ctx is done
func (i *IPRateLimiter) StartJanitor(ctx context.Context, interval, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := i.Evict(idle); n > 0 && i.log != nil {
					i.log.Debug("evicted idle rate limiters", "count", n)
				}
			}
		}
	}()
}

// RateLimit returns a middleware that rate limits by connection IP
func (i *IPRateLimiter) RateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// c.IP may alias the request buffer and the key outlives the handler
		ip := strings.Clone(c.IP())
		if !i.Allow(ip) {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Path())
			}
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "Too many requests",
			})
		}
		return c.Next()
	}
}
