package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/domain"
	"go.uber.org/zap"
)

// Middleware authenticates HTTP requests, by API key for service callers and
// by Azure AD bearer token for everyone else.
type Middleware struct {
	jwtValidator *JWTValidator
	apiKey       string
	logger       *zap.Logger
}

func NewMiddleware(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(&cfg.AzureAd),
		apiKey:       cfg.ApiKey.Value,
		logger:       logger,
	}
}

// Authenticate establishes who the caller is. Tenant enforcement happens in
// the service layer guard, which rejects any operation without a resolved
// tenant.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			m.authenticateAPIKey(w, r, next, apiKey, start)
			return
		}

		m.authenticateBearer(w, r, next, start)
	})
}

// authenticateAPIKey admits service callers. They carry no directory
// identity, so the tenant they act in comes from the X-Tenant-ID header.
func (m *Middleware) authenticateAPIKey(w http.ResponseWriter, r *http.Request, next http.Handler, apiKey string, start time.Time) {
	if !m.validAPIKey(apiKey) {
		m.logger.Warn("invalid API key attempt",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tenantID := domain.TenantID(strings.TrimSpace(r.Header.Get("X-Tenant-ID")))
	userCtx := &UserContext{
		UserID:      "system",
		DisplayName: "System",
		Email:       "system@pipeforge.io",
		Roles:       []domain.UserRoleType{domain.RoleAdmin, domain.RoleService},
		TenantID:    tenantID,
	}

	m.logger.Info("request authenticated",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("auth_type", "api_key"),
		zap.String("tenant_id", string(tenantID)),
		zap.Duration("auth_duration", time.Since(start)),
	)

	next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
}

func (m *Middleware) authenticateBearer(w http.ResponseWriter, r *http.Request, next http.Handler, start time.Time) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
		return
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
		return
	}

	userCtx, err := m.jwtValidator.ValidateToken(token)
	if err != nil {
		m.logger.Warn("token validation failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
		return
	}

	m.logger.Info("request authenticated",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("auth_type", "jwt"),
		zap.String("user_id", userCtx.UserID),
		zap.String("user_email", userCtx.Email),
		zap.String("tenant_id", string(userCtx.TenantID)),
		zap.Strings("roles", userCtx.RolesAsStrings()),
		zap.Duration("auth_duration", time.Since(start)),
	)

	next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
}

// RequireRole gates a route on the caller holding at least one of the roles.
func (m *Middleware) RequireRole(roles ...domain.UserRoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden: no user context", http.StatusForbidden)
				return
			}
			if !userCtx.HasAnyRole(roles...) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route on tenant-admin access.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok {
			http.Error(w, "Forbidden: no user context", http.StatusForbidden)
			return
		}
		if !userCtx.IsAdmin() {
			http.Error(w, "Forbidden: admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// validAPIKey compares in constant time; an unconfigured key admits nobody.
func (m *Middleware) validAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
