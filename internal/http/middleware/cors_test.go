package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func corsRequest(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	rec := corsRequest(handler, "https://app.example.com")
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = corsRequest(handler, "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_WildcardAllowsAnyOrigin(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}
	handler := middleware.CORS(cfg, "development", zap.NewNop())(okHandler())

	rec := corsRequest(handler, "https://anything.example.com")
	assert.Equal(t, "https://anything.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginsInProductionDeniesAll(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{"GET"}}
	handler := middleware.CORS(cfg, "production", zap.NewNop())(okHandler())

	rec := corsRequest(handler, "https://app.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginsInDevelopmentAllowsAll(t *testing.T) {
	cfg := &config.CORSConfig{AllowedMethods: []string{"GET"}}
	handler := middleware.CORS(cfg, "development", zap.NewNop())(okHandler())

	rec := corsRequest(handler, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
