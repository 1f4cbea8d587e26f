package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// DefaultWindow is the sliding window the request limit applies to.
const DefaultWindow = time.Minute

// RateLimiter limits requests per client IP over a sliding window.
type RateLimiter struct {
	limit      int
	window     time.Duration
	trustProxy bool
	exempt     []string
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	requests map[string][]time.Time

	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// Option configures a RateLimiter.
type Option func(*RateLimiter)

// WithWindow sets the sliding window length.
func WithWindow(d time.Duration) Option {
	return func(rl *RateLimiter) {
		if d > 0 {
			rl.window = d
		}
	}
}

// WithExemptPrefixes skips limiting for paths with any of the prefixes.
func WithExemptPrefixes(prefixes ...string) Option {
	return func(rl *RateLimiter) {
		rl.exempt = append(rl.exempt, prefixes...)
	}
}

// WithTrustProxy makes client IPs come from proxy headers.
func WithTrustProxy(trust bool) Option {
	return func(rl *RateLimiter) {
		rl.trustProxy = trust
	}
}

// WithLogger sets a custom logger for the limiter.
func WithLogger(logger *slog.Logger) Option {
	return func(rl *RateLimiter) {
		rl.logger = logger
	}
}

func withClock(now func() time.Time) Option {
	return func(rl *RateLimiter) {
		rl.now = now
	}
}

// New creates a rate limiter allowing limit requests per window per IP.
// Close must be called to stop the background cleanup goroutine.
func New(limit int, opts ...Option) (*RateLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}

	rl := &RateLimiter{
		limit:       limit,
		window:      DefaultWindow,
		logger:      slog.Default(),
		now:         time.Now,
		requests:    make(map[string][]time.Time),
		cleanupDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rl)
	}

	go rl.cleanupLoop()

	rl.logger.Info("rate limiter initialized",
		"limit", limit,
		"window", rl.window.String(),
		"trust_proxy", rl.trustProxy,
	)
	return rl, nil
}

// Middleware wraps next with rate limiting. Rejected requests get 429 with
// a JSON body and Retry-After.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.isExempt(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		ip := ExtractIP(r, rl.trustProxy)
		if ip == "" {
			rl.logger.Warn("failed to extract IP from request", "path", r.URL.Path)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		allowed, retryAfter := rl.allow(ip)
		if !allowed {
			rl.logger.Debug("rate limit exceeded", "ip", ip, "path", r.URL.Path, "limit", rl.limit)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": "rate limit exceeded",
				"code":  http.StatusTooManyRequests,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) isExempt(path string) bool {
	return lo.ContainsBy(rl.exempt, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// allow records a request from ip if it fits in the window. When it does
// not, it returns the whole seconds until the oldest request leaves the
// window (at least 1).
func (rl *RateLimiter) allow(ip string) (bool, int) {
	now := rl.now()
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := inWindow(rl.requests[ip], cutoff)
	if len(recent) >= rl.limit {
		rl.requests[ip] = recent
		wait := rl.window - now.Sub(recent[0])
		return false, max(1, int(wait.Seconds()))
	}

	rl.requests[ip] = append(recent, now)
	return true, 0
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.cleanupDone:
			return
		}
	}
}

// cleanup drops IPs with no requests left in the window.
func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, ts := range rl.requests {
		recent := inWindow(ts, cutoff)
		if len(recent) == 0 {
			delete(rl.requests, ip)
			continue
		}
		rl.requests[ip] = recent
	}
}

// tracked returns the number of IPs currently held.
func (rl *RateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.requests)
}

func inWindow(ts []time.Time, cutoff time.Time) []time.Time {
	return lo.Filter(ts, func(t time.Time, _ int) bool {
		return t.After(cutoff)
	})
}

// Close stops the background cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		close(rl.cleanupDone)
	})
}
