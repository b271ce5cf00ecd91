package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func rateLimitConfig(mutate func(*config.RateLimitConfig)) *config.RateLimitConfig {
	cfg := &config.RateLimitConfig{
		Enabled:               true,
		RequestsPerMinute:     3,
		RequestsPerMinuteAuth: 5,
	}
	if mutate != nil {
		mutate(cfg)
	}
	return cfg
}

func hitOnce(rl *middleware.RateLimiter, path, remoteAddr string, user string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	if user != "" {
		req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{
			UserID:   user,
			Roles:    []domain.UserRoleType{domain.RoleRep},
			TenantID: "acme",
		}))
	}
	rec := httptest.NewRecorder()
	rl.Limit(okHandler()).ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(func(c *config.RateLimitConfig) {
		c.Enabled = false
		c.RequestsPerMinute = 1
	}), zap.NewNop())

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(rl, "/leads", "10.0.0.1:1234", ""))
	}
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(nil), zap.NewNop())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(rl, "/leads", "10.0.0.2:1234", ""), fmt.Sprintf("request %d", i+1))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitOnce(rl, "/leads", "10.0.0.2:1234", ""))
}

func TestRateLimiter_AuthenticatedUsersGetOwnBucket(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(nil), zap.NewNop())

	// Exhaust the IP bucket
	for i := 0; i < 3; i++ {
		hitOnce(rl, "/leads", "10.0.0.3:1234", "")
	}
	assert.Equal(t, http.StatusTooManyRequests, hitOnce(rl, "/leads", "10.0.0.3:1234", ""))

	// Same IP, but authenticated callers are keyed by user ID
	assert.Equal(t, http.StatusOK, hitOnce(rl, "/leads", "10.0.0.3:1234", "alice"))
}

func TestRateLimiter_WhitelistedPathBypasses(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(func(c *config.RateLimitConfig) {
		c.RequestsPerMinute = 1
		c.WhitelistPaths = []string{"/health", "/swagger/*"}
	}), zap.NewNop())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(rl, "/health", "10.0.0.4:1234", ""))
		assert.Equal(t, http.StatusOK, hitOnce(rl, "/swagger/index.html", "10.0.0.4:1234", ""))
	}
}

func TestRateLimiter_WhitelistedIPBypasses(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(func(c *config.RateLimitConfig) {
		c.RequestsPerMinute = 1
		c.WhitelistIPs = []string{"10.0.0.5"}
	}), zap.NewNop())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitOnce(rl, "/leads", "10.0.0.5:1234", ""))
	}
}

func TestRateLimiter_ExceededResponseHasRetryAfter(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(func(c *config.RateLimitConfig) {
		c.RequestsPerMinute = 1
	}), zap.NewNop())

	hitOnce(rl, "/leads", "10.0.0.6:1234", "")

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.RemoteAddr = "10.0.0.6:1234"
	rec := httptest.NewRecorder()
	rl.Limit(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimiter_XForwardedForTakesFirstIP(t *testing.T) {
	rl := middleware.NewRateLimiter(rateLimitConfig(func(c *config.RateLimitConfig) {
		c.RequestsPerMinute = 1
		c.WhitelistIPs = []string{"203.0.113.9"}
	}), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.RemoteAddr = "10.0.0.7:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.7")
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		rl.Limit(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
