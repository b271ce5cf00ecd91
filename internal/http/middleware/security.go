package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pipeforge/lead-api/internal/config"
)

// SecurityHeaders stamps browser hardening headers on every response.
// Each header is controlled independently by config; an empty value or a
// false flag disables that header.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	hsts := buildHSTSValue(cfg)

	static := map[string]string{
		"X-Frame-Options":           cfg.FrameOptions,
		"X-XSS-Protection":          cfg.XSSProtection,
		"Content-Security-Policy":   cfg.ContentSecurityPolicy,
		"Referrer-Policy":           cfg.ReferrerPolicy,
		"Permissions-Policy":        cfg.PermissionsPolicy,
		"Strict-Transport-Security": hsts,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			if cfg.ContentTypeNosniff {
				h.Set("X-Content-Type-Options", "nosniff")
			}
			for name, value := range static {
				if value != "" {
					h.Set(name, value)
				}
			}

			// Strip anything that identifies the server software
			h.Del("X-Powered-By")
			h.Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

func buildHSTSValue(cfg *config.SecurityConfig) string {
	if !cfg.EnableHSTS {
		return ""
	}
	var b strings.Builder
	b.WriteString("max-age=")
	b.WriteString(strconv.Itoa(cfg.HSTSMaxAge))
	if cfg.HSTSIncludeSubdomains {
		b.WriteString("; includeSubDomains")
	}
	if cfg.HSTSPreload {
		b.WriteString("; preload")
	}
	return b.String()
}
