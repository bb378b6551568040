package web

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate    float64                      // requests per second
	Burst   int                          // max burst
	KeyFunc func(r *http.Request) string // default: remote IP
	MaxIdle time.Duration                // drop limiters idle longer than this (default: 5m)
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns middleware that applies per-key rate limiting.
// Limited requests get 429 with a Retry-After header.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = remoteHost
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	retryAfter := "1"
	if cfg.Rate > 0 && cfg.Rate < 1 {
		retryAfter = strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)

			mu.Lock()
			now := time.Now()
			if now.Sub(lastCleanup) >= cfg.MaxIdle {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > cfg.MaxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
				limiters[key] = entry
			}
			entry.lastSeen = now
			mu.Unlock()

			if !entry.limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				WriteError(w, Error(http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
