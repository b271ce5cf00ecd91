package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pipeforge/lead-api/docs"
	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/config"
	"github.com/pipeforge/lead-api/internal/database"
	"github.com/pipeforge/lead-api/internal/http/handler"
	"github.com/pipeforge/lead-api/internal/http/middleware"
	"github.com/pipeforge/lead-api/internal/http/router"
	"github.com/pipeforge/lead-api/internal/jobs"
	"github.com/pipeforge/lead-api/internal/logger"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/service"
	"github.com/pipeforge/lead-api/internal/storage"
	"github.com/pipeforge/lead-api/internal/warehouse"
	"go.uber.org/zap"
)

// @title Pipeforge Lead API
// @version 1.0
// @description Multi-tenant lead lifecycle and scoring API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@pipeforge.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "leads-staging.pipeforge.io"
	case "production":
		docs.SwaggerInfo.Host = "api.pipeforge.io"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema changes ship as goose migrations; AutoMigrate only keeps a
	// local development database in step without running the CLI.
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	}

	// Initialize the export archive storage
	exportStore, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize warehouse connection (optional - for reporting snapshots)
	// The app continues without it if not configured or unreachable
	var whClient *warehouse.Client
	if cfg.Warehouse.Enabled {
		whClient, err = warehouse.NewClient(&cfg.Warehouse, log)
		if err != nil {
			log.Warn("Warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		} else if whClient != nil {
			log.Info("Warehouse connected successfully",
				zap.Int("max_open_conns", cfg.Warehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.Warehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Warehouse not configured, skipping",
			zap.Bool("enabled", cfg.Warehouse.Enabled),
		)
	}

	// Initialize repositories
	leadRepo := repository.NewLeadRepository(db)
	activityRepo := repository.NewLeadActivityRepository(db)
	eventRepo := repository.NewLifecycleEventRepository(db)
	sequenceRepo := repository.NewLeadNumberSequenceRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	tenantRepo := repository.NewTenantRepository(db)

	// Initialize services
	numberService := service.NewLeadNumberService(sequenceRepo, log)
	assignmentService := service.NewAssignmentService(leadRepo, log)
	statsService := service.NewLeadStatsService(leadRepo, log)
	exportService := service.NewLeadExportService(leadRepo, exportStore, log)
	notificationService := service.NewNotificationService(notificationRepo, log)
	leadService := service.NewLeadService(
		leadRepo,
		activityRepo,
		eventRepo,
		notificationRepo,
		numberService,
		assignmentService,
		log,
	)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	leadHandler := handler.NewLeadHandler(leadService, statsService, exportService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	authHandler := handler.NewAuthHandler(tenantRepo, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		leadHandler,
		notificationHandler,
		authHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Warehouse.Enabled && cfg.Warehouse.PeriodicSyncEnabled && whClient != nil {
		scheduler = jobs.NewScheduler(log)

		// Register the nightly stats snapshot job
		// runStartupSync=true pushes one snapshot per tenant immediately so a
		// fresh deployment does not wait a full day
		if err := jobs.RegisterStatsSyncJob(
			scheduler,
			tenantRepo,
			statsService,
			whClient,
			log,
			cfg.Warehouse.PeriodicSyncCron,
			cfg.Warehouse.PeriodicSyncTimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register stats sync job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with stats sync job",
				zap.String("cron_expr", cfg.Warehouse.PeriodicSyncCron),
				zap.Duration("timeout", cfg.Warehouse.PeriodicSyncTimeoutDuration()),
			)
		}
	} else {
		log.Info("Warehouse periodic sync disabled",
			zap.Bool("warehouse_enabled", cfg.Warehouse.Enabled),
			zap.Bool("periodic_sync_enabled", cfg.Warehouse.PeriodicSyncEnabled),
			zap.Bool("warehouse_client_available", whClient != nil),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close warehouse connection if initialized
		if whClient != nil {
			if err := whClient.Close(); err != nil {
				log.Warn("Error closing warehouse connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
