package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

// LeadNumberSequenceRepository handles database operations for per-tenant
// lead number sequences. Numbers are never reused, even after deletions.
type LeadNumberSequenceRepository struct {
	db *gorm.DB
}

// NewLeadNumberSequenceRepository creates a new LeadNumberSequenceRepository
func NewLeadNumberSequenceRepository(db *gorm.DB) *LeadNumberSequenceRepository {
	return &LeadNumberSequenceRepository{db: db}
}

// GetNextNumber atomically retrieves and increments the sequence for a tenant.
// The increment runs as a single UPDATE statement, so concurrent creates
// serialize on the row and cannot be handed the same number. If no sequence
// exists for the tenant yet, one is created starting at 1; the unique index
// on tenant_id rejects the loser of a first-creation race.
//
// Returns the next sequence number to use (already incremented in DB).
func (r *LeadNumberSequenceRepository) GetNextNumber(ctx context.Context, tenantID domain.TenantID) (int, error) {
	var nextSeq int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.LeadNumberSequence{}).
			Where("tenant_id = ?", tenantID).
			Updates(map[string]interface{}{
				"last_sequence": gorm.Expr("last_sequence + 1"),
				"updated_at":    time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to increment lead number sequence: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			seq := domain.LeadNumberSequence{
				TenantID:     tenantID,
				LastSequence: 1,
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create lead number sequence: %w", err)
			}
			nextSeq = 1
			return nil
		}

		var seq domain.LeadNumberSequence
		if err := tx.Where("tenant_id = ?", tenantID).First(&seq).Error; err != nil {
			return fmt.Errorf("failed to read lead number sequence: %w", err)
		}
		nextSeq = seq.LastSequence
		return nil
	})

	if err != nil {
		return 0, err
	}

	return nextSeq, nil
}

// GetCurrentSequence retrieves the current sequence value without incrementing.
// Returns 0 if no sequence exists for the tenant.
func (r *LeadNumberSequenceRepository) GetCurrentSequence(ctx context.Context, tenantID domain.TenantID) (int, error) {
	var seq domain.LeadNumberSequence
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get lead number sequence: %w", result.Error)
	}

	return seq.LastSequence, nil
}
