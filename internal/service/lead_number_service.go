package service

import (
	"context"
	"fmt"

	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"go.uber.org/zap"
)

// LeadNumberService hands out the human-readable sequential number assigned
// to every lead. Numbers are unique within a tenant and never reused.
//
// Format: LEAD-NNNNN, zero-padded to 5 digits, e.g. "LEAD-00042".
type LeadNumberService struct {
	repo   *repository.LeadNumberSequenceRepository
	logger *zap.Logger
}

// NewLeadNumberService creates a new LeadNumberService
func NewLeadNumberService(
	repo *repository.LeadNumberSequenceRepository,
	logger *zap.Logger,
) *LeadNumberService {
	return &LeadNumberService{
		repo:   repo,
		logger: logger,
	}
}

// GenerateLeadNumber generates the next lead number for a tenant.
func (s *LeadNumberService) GenerateLeadNumber(ctx context.Context, tenantID domain.TenantID) (string, error) {
	nextSeq, err := s.repo.GetNextNumber(ctx, tenantID)
	if err != nil {
		s.logger.Error("failed to get next lead sequence number",
			zap.String("tenant_id", string(tenantID)),
			zap.Error(err))
		return "", fmt.Errorf("failed to generate lead number: %w", err)
	}

	number := fmt.Sprintf("LEAD-%05d", nextSeq)

	s.logger.Debug("generated lead number",
		zap.String("number", number),
		zap.String("tenant_id", string(tenantID)),
		zap.Int("sequence", nextSeq))

	return number, nil
}

// GetCurrentSequence returns the last issued sequence for a tenant without
// incrementing it. Returns 0 if no lead has been numbered yet.
func (s *LeadNumberService) GetCurrentSequence(ctx context.Context, tenantID domain.TenantID) (int, error) {
	return s.repo.GetCurrentSequence(ctx, tenantID)
}
