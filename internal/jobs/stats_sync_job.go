package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/warehouse"
)

// StatsSyncJobName is the name of the warehouse stats sync job
const StatsSyncJobName = "warehouse_stats_sync"

// TenantSource lists the tenants whose stats should be pushed.
// This interface allows the job to call the repository without importing it directly.
type TenantSource interface {
	ListActive(ctx context.Context) ([]domain.Tenant, error)
}

// StatsSource produces a tenant's current funnel summary.
type StatsSource interface {
	StatsForTenant(ctx context.Context, tenantID domain.TenantID, filters *domain.LeadStatsFilters) (*domain.LeadStatsDTO, error)
}

// SnapshotSink receives the per-tenant snapshots, normally the warehouse client.
type SnapshotSink interface {
	IsEnabled() bool
	UpsertLeadStats(ctx context.Context, snapshot *warehouse.LeadStatsSnapshot) error
}

// StatsSyncJob pushes every active tenant's funnel summary into the
// reporting warehouse. One failed tenant does not stop the pass; the
// remaining tenants still sync.
type StatsSyncJob struct {
	tenants TenantSource
	stats   StatsSource
	sink    SnapshotSink
	logger  *zap.Logger
	timeout time.Duration
}

// NewStatsSyncJob creates a new warehouse stats sync job.
// The timeout controls how long one full pass over all tenants is allowed to run.
func NewStatsSyncJob(tenants TenantSource, stats StatsSource, sink SnapshotSink, logger *zap.Logger, timeout time.Duration) *StatsSyncJob {
	return &StatsSyncJob{
		tenants: tenants,
		stats:   stats,
		sink:    sink,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one sync pass over all active tenants.
// This is called by the scheduler according to the cron expression.
func (j *StatsSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()

	if j.sink == nil || !j.sink.IsEnabled() {
		j.logger.Debug("warehouse sink not available, skipping stats sync")
		return
	}

	tenants, err := j.tenants.ListActive(ctx)
	if err != nil {
		j.logger.Error("stats sync failed to list tenants",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	snapshotDate := time.Now().UTC().Truncate(24 * time.Hour)
	synced, failed := 0, 0

	for i := range tenants {
		tenant := &tenants[i]

		dto, err := j.stats.StatsForTenant(ctx, tenant.ID, nil)
		if err != nil {
			failed++
			j.logger.Warn("stats sync failed to aggregate tenant",
				zap.String("tenant_id", string(tenant.ID)),
				zap.Error(err))
			continue
		}

		snapshot := &warehouse.LeadStatsSnapshot{
			TenantID:       string(tenant.ID),
			SnapshotDate:   snapshotDate,
			TotalLeads:     dto.Total,
			ConvertedLeads: dto.ByStatus[string(domain.LeadStatusConverted)],
			ConversionRate: dto.ConversionRate,
			AverageScore:   dto.AverageScore,
			HotCount:       dto.HotCount,
			WarmCount:      dto.WarmCount,
			ColdCount:      dto.ColdCount,
		}

		if err := j.sink.UpsertLeadStats(ctx, snapshot); err != nil {
			failed++
			j.logger.Warn("stats sync failed to upsert snapshot",
				zap.String("tenant_id", string(tenant.ID)),
				zap.Error(err))
			continue
		}

		synced++
	}

	j.logger.Info("warehouse stats sync completed",
		zap.Int("tenants_synced", synced),
		zap.Int("tenants_failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterStatsSyncJob registers the warehouse stats sync job with the scheduler.
// The cronExpr should be a valid cron expression (e.g., "0 30 2 * * *" for 02:30 nightly).
// If runStartupSync is true, one pass also runs immediately in a background
// goroutine so a fresh deployment does not wait a full day for its first snapshot.
func RegisterStatsSyncJob(scheduler *Scheduler, tenants TenantSource, stats StatsSource, sink SnapshotSink, logger *zap.Logger, cronExpr string, timeout time.Duration, runStartupSync bool) error {
	job := NewStatsSyncJob(tenants, stats, sink, logger, timeout)

	if runStartupSync {
		go job.Run()
	}

	return scheduler.AddJob(StatsSyncJobName, cronExpr, job.Run)
}
