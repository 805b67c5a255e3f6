package http

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/utils"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long an address keeps its bucket after its last
	// request.
	limiterIdleTTL = 10 * time.Minute

	// limiterMaxEntries caps the number of tracked addresses. A new address
	// at the cap first sweeps idle buckets, then evicts the least recently
	// seen one.
	limiterMaxEntries = 4096
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter keeps one token bucket per client IP.
// A nil *ipRateLimiter allows everything.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time

	maxEntries int
}

func newIPRateLimiter(perSecond float64, burst int) *ipRateLimiter {
	if perSecond <= 0 || burst <= 0 {
		return nil
	}
	return &ipRateLimiter{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,

		maxEntries: limiterMaxEntries,
	}
}

// reserve reports whether ip may proceed and, if not, how long it should
// wait before retrying.
func (l *ipRateLimiter) reserve(ip string) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= l.maxEntries {
			l.evict(now)
		}
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	if entry.limiter.AllowN(now, 1) {
		return true, 0
	}

	r := entry.limiter.ReserveN(now, 1)
	wait := r.DelayFrom(now)
	r.CancelAt(now)
	return false, wait
}

// evict drops idle buckets and, if none were idle, the least recently seen
// one. l.mu must be held.
func (l *ipRateLimiter) evict(now time.Time) {
	var (
		oldestKey  string
		oldestSeen time.Time
	)
	for key, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(l.limiters, key)
			continue
		}
		if oldestKey == "" || entry.lastSeen.Before(oldestSeen) {
			oldestKey, oldestSeen = key, entry.lastSeen
		}
	}
	if len(l.limiters) >= l.maxEntries && oldestKey != "" {
		delete(l.limiters, oldestKey)
	}
}

// withRateLimit throttles brute-force attempts on the auth endpoints.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		ok, wait := h.authLimiter.reserve(ip)
		if !ok {
			logger.FromRequest(r).Warn().Str("ip", ip).Dur("retry_after", wait).Msg("auth rate limit exceeded")
			w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
			utils.WriteError(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
