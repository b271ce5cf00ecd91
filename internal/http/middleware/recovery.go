package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// Recovery middleware recovers from panics in handlers and returns a 500
// instead of tearing down the connection.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error","message":"An unexpected error occurred."}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
