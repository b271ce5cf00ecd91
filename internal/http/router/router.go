package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/database"
	"github.com/pipeforge/lead-api/internal/http/handler"
	"github.com/pipeforge/lead-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/pipeforge/lead-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	leadHandler         *handler.LeadHandler
	notificationHandler *handler.NotificationHandler
	authHandler         *handler.AuthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	leadHandler *handler.LeadHandler,
	notificationHandler *handler.NotificationHandler,
	authHandler *handler.AuthHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		leadHandler:         leadHandler,
		notificationHandler: notificationHandler,
		authHandler:         authHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Tenant administration
			r.With(rt.authMiddleware.RequireAdmin).Get("/tenants", rt.authHandler.ListTenants)

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", rt.leadHandler.List)
				r.Post("/", rt.leadHandler.Create)
				r.Get("/stats", rt.leadHandler.GetStats)
				r.Get("/export", rt.leadHandler.Export)
				r.Get("/{id}", rt.leadHandler.GetByID)
				r.Patch("/{id}", rt.leadHandler.Update)
				r.Post("/{id}/qualify", rt.leadHandler.Qualify)
				r.Post("/{id}/convert", rt.leadHandler.Convert)
				r.Post("/{id}/assign", rt.leadHandler.Assign)
				r.Get("/{id}/activities", rt.leadHandler.ListActivities)
				r.Post("/{id}/activities", rt.leadHandler.CreateActivity)
				r.Get("/{id}/history", rt.leadHandler.GetHistory)
			})

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Get("/count", rt.notificationHandler.GetUnreadCount)
				r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
			})
		})
	})

	return r
}
