package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"go.uber.org/zap"
)

// AssignmentService selects an owner for leads that arrive without one.
type AssignmentService struct {
	leadRepo *repository.LeadRepository
	logger   *zap.Logger
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(leadRepo *repository.LeadRepository, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// PickOwner returns the owner for a new or reassigned lead. An explicitly
// requested assignee wins after trimming. A blank or absent request falls
// through to the balancer, which picks the owner currently holding the fewest
// leads in the tenant; ties break on owner identifier order. With no owners
// on record the lead stays unassigned.
//
// The load read is advisory and takes no lock, so two concurrent creates may
// both land on the same owner.
func (s *AssignmentService) PickOwner(ctx context.Context, tenantID domain.TenantID, requested *string) (*string, error) {
	if requested != nil {
		trimmed := strings.TrimSpace(*requested)
		if trimmed != "" {
			return &trimmed, nil
		}
	}

	loads, err := s.leadRepo.CountByOwner(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to read owner loads: %w", err)
	}
	if len(loads) == 0 {
		s.logger.Debug("no owners on record, leaving lead unassigned",
			zap.String("tenant_id", string(tenantID)))
		return nil, nil
	}

	owner := loads[0].AssignedTo
	return &owner, nil
}
