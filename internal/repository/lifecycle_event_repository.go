package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

// LifecycleEventRepository appends and reads the per-lead event journal.
// Rows are append-only; nothing here updates or deletes.
//
// Recommended index:
//
//	CREATE INDEX idx_lifecycle_events_tenant_lead ON lifecycle_events(tenant_id, lead_id);
type LifecycleEventRepository struct {
	db *gorm.DB
}

func NewLifecycleEventRepository(db *gorm.DB) *LifecycleEventRepository {
	return &LifecycleEventRepository{db: db}
}

// Append writes one event row. For everything except conversion the caller
// treats a failure here as non-fatal; the converted event is written through
// the conversion transaction instead so it commits with the lead row.
func (r *LifecycleEventRepository) Append(ctx context.Context, event *domain.LifecycleEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByLead returns the full event history for one lead, newest first.
func (r *LifecycleEventRepository) ListByLead(ctx context.Context, tenantID domain.TenantID, leadID uuid.UUID) ([]domain.LifecycleEvent, error) {
	var events []domain.LifecycleEvent
	err := ApplyTenantScope(r.db.WithContext(ctx), tenantID).
		Where("lead_id = ?", leadID).
		Order("occurred_at DESC").
		Find(&events).Error
	return events, err
}
