package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pipeforge/lead-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRecovery_PanicBecomes500(t *testing.T) {
	handler := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("lead scoring went sideways")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestRecovery_PassesThroughNormally(t *testing.T) {
	handler := middleware.Recovery(zap.NewNop())(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
