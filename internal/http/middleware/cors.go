package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/pipeforge/lead-api/internal/config"
	"go.uber.org/zap"
)

// CORS builds the cross-origin policy from config. Behavior by origin list:
// a "*" entry allows every origin, an explicit list allows only those, and an
// empty list allows everything in development but nothing anywhere else.
func CORS(cfg *config.CORSConfig, environment string, logger *zap.Logger) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   cfg.ExposedHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	allowAny := func(r *http.Request, origin string) bool { return origin != "" }
	denyAll := func(r *http.Request, origin string) bool { return false }
	isDev := environment == "development" || environment == "local" || environment == ""

	switch {
	case hasWildcard(cfg.AllowedOrigins):
		if !isDev {
			logger.Warn("CORS configured with wildcard origin in non-development environment",
				zap.String("environment", environment))
		}
		opts.AllowOriginFunc = allowAny

	case len(cfg.AllowedOrigins) > 0:
		opts.AllowedOrigins = cfg.AllowedOrigins
		logger.Info("CORS configured with explicit origins",
			zap.Strings("origins", cfg.AllowedOrigins))

	case isDev:
		opts.AllowOriginFunc = allowAny
		logger.Info("CORS configured to allow all origins in development mode")

	default:
		// go-chi/cors treats an empty AllowedOrigins as "*", so denying
		// everything needs an explicit func.
		opts.AllowOriginFunc = denyAll
		logger.Warn("CORS configured with no allowed origins, all cross-origin requests will be denied",
			zap.String("environment", environment))
	}

	return cors.Handler(opts)
}

func hasWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
