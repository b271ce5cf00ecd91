// Package warehouse provides connectivity to the MS SQL Server reporting
// warehouse. The nightly sync job pushes per-tenant lead funnel snapshots
// into it so BI dashboards can report on pipeline health without touching
// the operational database.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // MS SQL Server driver
	"github.com/pipeforge/lead-api/internal/config"
	"go.uber.org/zap"
)

const (
	// Default retry configuration for connection attempts
	defaultMaxRetries     = 3
	defaultInitialBackoff = 1 * time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultBackoffFactor  = 2.0

	// Default health check timeout
	defaultHealthCheckTimeout = 5 * time.Second
)

// snapshotTable is the warehouse table that receives one funnel row per
// tenant per day.
const snapshotTable = "dbo.lead_funnel_snapshot"

// Client provides access to the MS SQL Server reporting warehouse.
// It manages connection pooling and provides the snapshot upsert used by
// the nightly sync job.
type Client struct {
	db           *sql.DB
	config       *config.WarehouseConfig
	logger       *zap.Logger
	queryTimeout time.Duration
}

// LeadStatsSnapshot is one tenant's funnel summary for a single day.
type LeadStatsSnapshot struct {
	TenantID       string
	SnapshotDate   time.Time
	TotalLeads     int64
	ConvertedLeads int64
	ConversionRate float64
	AverageScore   float64
	HotCount       int64
	WarmCount      int64
	ColdCount      int64
}

// HealthStatus represents the health check result for the warehouse connection
type HealthStatus struct {
	Status     string        `json:"status"`
	Latency    time.Duration `json:"latency_ms"`
	Error      string        `json:"error,omitempty"`
	MaxOpen    int           `json:"max_open_connections"`
	Open       int           `json:"open_connections"`
	InUse      int           `json:"in_use"`
	Idle       int           `json:"idle"`
	WaitCount  int64         `json:"wait_count"`
	WaitTimeMs int64         `json:"wait_time_ms"`
}

// NewClient creates a new warehouse client with the given configuration.
// Returns nil if the warehouse is not enabled or not configured.
// The client establishes a connection pool with retry logic for transient failures.
func NewClient(cfg *config.WarehouseConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		logger.Info("Warehouse connection disabled")
		return nil, nil
	}

	// Validate required configuration
	if cfg.URL == "" || cfg.User == "" || cfg.Password == "" {
		logger.Warn("Warehouse enabled but missing credentials, skipping connection",
			zap.Bool("url_present", cfg.URL != ""),
			zap.Bool("user_present", cfg.User != ""),
			zap.Bool("password_present", cfg.Password != ""),
		)
		return nil, nil
	}

	logger.Info("Initializing warehouse connection",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.ConnMaxLifetime),
		zap.Int("query_timeout_seconds", cfg.QueryTimeout),
	)

	// Build connection string
	connStr, err := buildConnectionString(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}

	// Attempt connection with retry logic
	var db *sql.DB
	backoff := defaultInitialBackoff

	for attempt := 1; attempt <= defaultMaxRetries; attempt++ {
		logger.Info("Attempting warehouse connection",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", defaultMaxRetries),
		)

		db, err = sql.Open("sqlserver", connStr)
		if err != nil {
			logger.Warn("Failed to open warehouse connection",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		// Configure connection pool
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

		// Test connection with ping
		ctx, cancel := context.WithTimeout(context.Background(), defaultHealthCheckTimeout)
		err = db.PingContext(ctx)
		cancel()

		if err != nil {
			logger.Warn("Warehouse ping failed",
				zap.Error(err),
				zap.Int("attempt", attempt),
			)
			_ = db.Close()
			if attempt < defaultMaxRetries {
				time.Sleep(backoff)
				backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			}
			continue
		}

		// Connection successful
		logger.Info("Warehouse connection established successfully",
			zap.Int("attempts_taken", attempt),
		)

		return &Client{
			db:           db,
			config:       cfg,
			logger:       logger,
			queryTimeout: cfg.QueryTimeoutDuration(),
		}, nil
	}

	return nil, fmt.Errorf("failed to connect to warehouse after %d attempts: %w", defaultMaxRetries, err)
}

// buildConnectionString constructs a SQL Server connection string from the config.
// URL format expected: host:port/database or host:port (uses default database)
func buildConnectionString(cfg *config.WarehouseConfig) (string, error) {
	// Parse URL format: host:port/database or host:port
	urlParts := strings.SplitN(cfg.URL, "/", 2)
	hostPort := urlParts[0]
	database := ""
	if len(urlParts) > 1 {
		database = urlParts[1]
	}

	// Parse host and port
	hostParts := strings.SplitN(hostPort, ":", 2)
	host := hostParts[0]
	port := "1433" // Default SQL Server port
	if len(hostParts) > 1 {
		port = hostParts[1]
	}

	// Build connection string using URL format
	query := url.Values{}
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	query.Add("connection timeout", "30")
	if database != "" {
		query.Add("database", database)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		RawQuery: query.Encode(),
	}

	return u.String(), nil
}

// Close gracefully closes the warehouse connection.
// Should be called during application shutdown.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}

	c.logger.Info("Closing warehouse connection")

	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close warehouse connection", zap.Error(err))
		return fmt.Errorf("failed to close warehouse connection: %w", err)
	}

	c.logger.Info("Warehouse connection closed successfully")
	return nil
}

// HealthCheck performs a health check on the warehouse connection.
// Returns detailed status including connection pool statistics.
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if c == nil || c.db == nil {
		return &HealthStatus{
			Status: "disabled",
		}
	}

	start := time.Now()

	// Use provided context or create one with default timeout
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	err := c.db.PingContext(ctx)
	latency := time.Since(start)

	stats := c.db.Stats()
	status := &HealthStatus{
		Latency:    latency,
		MaxOpen:    stats.MaxOpenConnections,
		Open:       stats.OpenConnections,
		InUse:      stats.InUse,
		Idle:       stats.Idle,
		WaitCount:  stats.WaitCount,
		WaitTimeMs: stats.WaitDuration.Milliseconds(),
	}

	if err != nil {
		c.logger.Warn("Warehouse health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// UpsertLeadStats writes one tenant's funnel snapshot, replacing any
// existing row for the same tenant and day. The MERGE keys on
// (tenant_id, snapshot_date) so rerunning the sync is idempotent.
func (c *Client) UpsertLeadStats(ctx context.Context, snapshot *LeadStatsSnapshot) error {
	if c == nil || c.db == nil {
		return fmt.Errorf("warehouse client not initialized")
	}

	// Apply default query timeout if context doesn't have a deadline
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.queryTimeout)
		defer cancel()
	}

	query := fmt.Sprintf(`MERGE %s WITH (HOLDLOCK) AS target
USING (SELECT @p1 AS tenant_id, @p2 AS snapshot_date) AS source
ON target.tenant_id = source.tenant_id AND target.snapshot_date = source.snapshot_date
WHEN MATCHED THEN UPDATE SET
	total_leads = @p3,
	converted_leads = @p4,
	conversion_rate = @p5,
	average_score = @p6,
	hot_count = @p7,
	warm_count = @p8,
	cold_count = @p9,
	updated_at = SYSUTCDATETIME()
WHEN NOT MATCHED THEN INSERT
	(tenant_id, snapshot_date, total_leads, converted_leads, conversion_rate, average_score, hot_count, warm_count, cold_count, updated_at)
VALUES
	(@p1, @p2, @p3, @p4, @p5, @p6, @p7, @p8, @p9, SYSUTCDATETIME());`, snapshotTable)

	start := time.Now()

	_, err := c.db.ExecContext(ctx, query,
		snapshot.TenantID,
		snapshot.SnapshotDate.Format("2006-01-02"),
		snapshot.TotalLeads,
		snapshot.ConvertedLeads,
		snapshot.ConversionRate,
		snapshot.AverageScore,
		snapshot.HotCount,
		snapshot.WarmCount,
		snapshot.ColdCount,
	)
	if err != nil {
		c.logger.Error("Warehouse snapshot upsert failed",
			zap.Error(err),
			zap.String("tenant_id", snapshot.TenantID),
			zap.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("snapshot upsert failed: %w", err)
	}

	c.logger.Debug("Warehouse snapshot upserted",
		zap.String("tenant_id", snapshot.TenantID),
		zap.Int64("total_leads", snapshot.TotalLeads),
		zap.Duration("duration", time.Since(start)),
	)

	return nil
}

// IsEnabled returns true if the client is initialized and ready for queries.
func (c *Client) IsEnabled() bool {
	return c != nil && c.db != nil
}
