package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/config"
	"go.uber.org/zap"
)

// RateLimiter throttles requests per minute. Authenticated callers are keyed
// by user id with their own (usually higher) budget; everyone else shares a
// per-IP budget. Whitelisted IPs and paths bypass both.
type RateLimiter struct {
	cfg         *config.RateLimitConfig
	logger      *zap.Logger
	ipLimiter   func(http.Handler) http.Handler
	userLimiter func(http.Handler) http.Handler
	skipIPs     map[string]bool
	skipPaths   map[string]bool
}

// NewRateLimiter builds the limiter from config.
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		cfg:       cfg,
		logger:    logger,
		skipIPs:   make(map[string]bool, len(cfg.WhitelistIPs)),
		skipPaths: make(map[string]bool, len(cfg.WhitelistPaths)),
	}
	for _, ip := range cfg.WhitelistIPs {
		rl.skipIPs[ip] = true
	}
	for _, p := range cfg.WhitelistPaths {
		rl.skipPaths[p] = true
	}

	rl.ipLimiter = httprate.Limit(
		cfg.RequestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rl.exceeded),
	)
	rl.userLimiter = httprate.Limit(
		cfg.RequestsPerMinuteAuth,
		time.Minute,
		httprate.WithKeyFuncs(rl.keyByUserOrIP),
		httprate.WithLimitHandler(rl.exceeded),
	)

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("requests_per_minute_auth", cfg.RequestsPerMinuteAuth),
		zap.Int("burst_size", cfg.BurstSize),
		zap.Strings("whitelist_ips", cfg.WhitelistIPs),
		zap.Strings("whitelist_paths", cfg.WhitelistPaths),
	)
	return rl
}

// Limit applies user-keyed throttling to authenticated requests and IP-keyed
// throttling to the rest.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.bypasses(r) {
			next.ServeHTTP(w, r)
			return
		}
		if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
			rl.userLimiter(next).ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

// LimitByIP throttles purely by client IP, for routes mounted before
// authentication runs.
func (rl *RateLimiter) LimitByIP(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.bypasses(r) {
			next.ServeHTTP(w, r)
			return
		}
		rl.ipLimiter(next).ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) bypasses(r *http.Request) bool {
	return rl.pathWhitelisted(r.URL.Path) || rl.skipIPs[rl.clientIP(r)]
}

func (rl *RateLimiter) keyByUserOrIP(r *http.Request) (string, error) {
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
		return "user:" + userCtx.UserID, nil
	}
	return "ip:" + rl.clientIP(r), nil
}

// clientIP resolves the caller's address, honoring proxy headers. The first
// X-Forwarded-For entry is the original client.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// pathWhitelisted matches exact entries and "<prefix>/*" entries.
func (rl *RateLimiter) pathWhitelisted(path string) bool {
	if rl.skipPaths[path] {
		return true
	}
	for entry := range rl.skipPaths {
		if prefix, ok := strings.CutSuffix(entry, "/*"); ok && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (rl *RateLimiter) exceeded(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if userCtx, ok := auth.FromContext(r.Context()); ok && userCtx != nil {
		userID = userCtx.UserID
	}
	rl.logger.Warn("rate limit exceeded",
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("client_ip", rl.clientIP(r)),
		zap.String("user_id", userID),
	)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "60")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"rate limit exceeded","message":"Too many requests. Please try again later."}`))
}
