package service

import (
	"context"
	"fmt"

	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"go.uber.org/zap"
)

// LeadStatsService produces the tenant-scoped pipeline summary.
type LeadStatsService struct {
	leadRepo *repository.LeadRepository
	logger   *zap.Logger
}

func NewLeadStatsService(leadRepo *repository.LeadRepository, logger *zap.Logger) *LeadStatsService {
	return &LeadStatsService{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// GetStats aggregates lead counts, conversion rate, and score figures for the
// caller's tenant, optionally narrowed to a date range or assignee.
func (s *LeadStatsService) GetStats(ctx context.Context, filters *domain.LeadStatsFilters) (*domain.LeadStatsDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	return s.StatsForTenant(ctx, tenantID, filters)
}

// StatsForTenant computes the same summary for an explicit tenant. The
// nightly warehouse sync calls this while iterating tenants outside a
// request context.
func (s *LeadStatsService) StatsForTenant(ctx context.Context, tenantID domain.TenantID, filters *domain.LeadStatsFilters) (*domain.LeadStatsDTO, error) {
	stats, err := s.leadRepo.GetStats(ctx, tenantID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate lead stats: %w", err)
	}

	dto := &domain.LeadStatsDTO{
		Total:        stats.Total,
		AverageScore: stats.AverageScore,
		ByStatus:     make(map[string]int64, len(stats.ByStatus)),
		BySource:     make(map[string]int64, len(stats.BySource)),
		HotCount:     stats.ByRating[domain.LeadRatingHot],
		WarmCount:    stats.ByRating[domain.LeadRatingWarm],
		ColdCount:    stats.ByRating[domain.LeadRatingCold],
	}

	if stats.Total > 0 {
		dto.ConversionRate = float64(stats.ConvertedCount) / float64(stats.Total)
	}

	for status, count := range stats.ByStatus {
		dto.ByStatus[string(status)] = count
	}
	for source, count := range stats.BySource {
		dto.BySource[string(source)] = count
	}

	return dto, nil
}
