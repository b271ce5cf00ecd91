package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

// LeadActivityRepository manages activity rows recorded against leads.
// Activities are immutable once written, so there are no update or delete
// methods.
//
// Recommended indexes:
//
//	CREATE INDEX idx_lead_activities_tenant_lead ON lead_activities(tenant_id, lead_id);
//	CREATE INDEX idx_lead_activities_created_at ON lead_activities(created_at);
type LeadActivityRepository struct {
	db *gorm.DB
}

func NewLeadActivityRepository(db *gorm.DB) *LeadActivityRepository {
	return &LeadActivityRepository{db: db}
}

// Create persists a new activity row.
func (r *LeadActivityRepository) Create(ctx context.Context, activity *domain.LeadActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ListByLead returns activities for one lead, newest first, together with
// the total count for pagination.
func (r *LeadActivityRepository) ListByLead(ctx context.Context, tenantID domain.TenantID, leadID uuid.UUID, offset, limit int, filters *domain.LeadActivityFilters) ([]domain.LeadActivity, int64, error) {
	query := ApplyTenantScope(r.db.WithContext(ctx).Model(&domain.LeadActivity{}), tenantID).
		Where("lead_id = ?", leadID)

	if filters != nil && filters.ActivityType != nil {
		query = query.Where("activity_type = ?", *filters.ActivityType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if offset < 0 {
		offset = 0
	}
	limit = ClampLimit(limit)

	var activities []domain.LeadActivity
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&activities).Error
	return activities, total, err
}
