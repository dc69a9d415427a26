package mcp

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultMaxBodyBytes int64 = 1 << 20

// HTTPHandlerConfig hardens the streamable HTTP transport. Stdio transport
// skips all of this: the process boundary is the trust boundary there.
type HTTPHandlerConfig struct {
	AuthToken       string
	RateLimitPerMin int
	MaxBodyBytes    int64
}

func hardenHTTPHandler(base http.Handler, cfg HTTPHandlerConfig) http.Handler {
	limit := cfg.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	limiter := newRateLimiter(cfg.RateLimitPerMin)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided, ok := bearerToken(r)
		if !ok {
			denyJSON(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if cfg.AuthToken == "" || provided != cfg.AuthToken {
			denyJSON(w, http.StatusForbidden, "invalid bearer token")
			return
		}
		if !limiter.allow(callerKey(r)) {
			denyJSON(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		base.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return token, token != ""
}

func callerKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(r.RemoteAddr)
	}
	if host == "" {
		return "unknown"
	}
	return host
}

// rateLimiter is a per-caller token bucket refilled continuously at
// perMin/60 tokens per second with burst capacity of one minute's quota.
type rateLimiter struct {
	mu      sync.Mutex
	rate    float64
	burst   float64
	callers map[string]*bucket
}

type bucket struct {
	tokens float64
	seen   time.Time
}

func newRateLimiter(perMin int) *rateLimiter {
	if perMin <= 0 {
		perMin = 60
	}
	return &rateLimiter{
		rate:    float64(perMin) / 60.0,
		burst:   float64(perMin),
		callers: make(map[string]*bucket),
	}
}

func (l *rateLimiter) allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.callers[key]
	if !ok {
		l.callers[key] = &bucket{tokens: l.burst - 1, seen: now}
		return true
	}

	b.tokens += now.Sub(b.seen).Seconds() * l.rate
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
