package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthMiddleware(apiKey string) *auth.Middleware {
	cfg := &config.Config{
		AzureAd: config.AzureAdConfig{
			ClientId:    "client-id",
			InstanceUrl: "https://login.microsoftonline.com/",
		},
		ApiKey: config.ApiKeyConfig{Value: apiKey},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

// captureUser returns a handler that records the user context it saw.
func captureUser(into **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := auth.FromContext(r.Context()); ok {
			*into = u
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_APIKeyWithTenantHeader(t *testing.T) {
	m := newAuthMiddleware("sekrit")

	var seen *auth.UserContext
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("x-api-key", "sekrit")
	req.Header.Set("X-Tenant-ID", "  acme  ")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(&seen)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "system", seen.UserID)
	assert.Equal(t, domain.TenantID("acme"), seen.TenantID)
	assert.True(t, seen.IsAdmin())
	assert.True(t, seen.HasRole(domain.RoleService))
}

func TestAuthenticate_InvalidAPIKey(t *testing.T) {
	m := newAuthMiddleware("sekrit")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("x-api-key", "wrong")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(new(*auth.UserContext))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_APIKeyDisabledWhenUnconfigured(t *testing.T) {
	m := newAuthMiddleware("")

	// Any presented key is rejected when no key is configured
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("x-api-key", "anything")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(new(*auth.UserContext))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MissingAuthorizationHeader(t *testing.T) {
	m := newAuthMiddleware("sekrit")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(new(*auth.UserContext))).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestAuthenticate_MalformedBearerHeader(t *testing.T) {
	m := newAuthMiddleware("sekrit")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("Authorization", "NotBearer abc")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(new(*auth.UserContext))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header format")
}

func TestAuthenticate_UnparseableBearerToken(t *testing.T) {
	m := newAuthMiddleware("sekrit")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")

	rec := httptest.NewRecorder()
	m.Authenticate(captureUser(new(*auth.UserContext))).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	m := newAuthMiddleware("sekrit")
	handler := m.RequireRole(domain.RoleManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No user context at all
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong role
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{
		UserID: "user-1",
		Roles:  []domain.UserRoleType{domain.RoleRep},
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Matching role
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{
		UserID: "user-2",
		Roles:  []domain.UserRoleType{domain.RoleManager},
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	m := newAuthMiddleware("sekrit")
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{
		UserID: "user-1",
		Roles:  []domain.UserRoleType{domain.RoleRep},
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{
		UserID: "user-2",
		Roles:  []domain.UserRoleType{domain.RoleAdmin},
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
