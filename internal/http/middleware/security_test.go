package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders_AllEnabled(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		HSTSPreload:           true,
		ContentSecurityPolicy: "default-src 'self'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		XSSProtection:         "1; mode=block",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=()",
	}

	handler := middleware.SecurityHeaders(cfg)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := rec.Header()
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", h.Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'", h.Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=()", h.Get("Permissions-Policy"))
	assert.Equal(t, "max-age=31536000; includeSubDomains; preload", h.Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTSWithoutExtensions(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS: true,
		HSTSMaxAge: 3600,
	}

	handler := middleware.SecurityHeaders(cfg)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "max-age=3600", rec.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_AllDisabled(t *testing.T) {
	handler := middleware.SecurityHeaders(&config.SecurityConfig{})(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := rec.Header()
	assert.Empty(t, h.Get("X-Content-Type-Options"))
	assert.Empty(t, h.Get("X-Frame-Options"))
	assert.Empty(t, h.Get("Strict-Transport-Security"))
}
