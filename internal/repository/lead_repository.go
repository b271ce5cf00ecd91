package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// leadUpdateColumns is the whitelist of columns a partial update may touch.
// Dynamic update maps are validated against it before reaching the database,
// so a column identifier never comes from caller input.
var leadUpdateColumns = map[string]bool{
	"company_name":      true,
	"contact_name":      true,
	"email":             true,
	"phone":             true,
	"mobile":            true,
	"website":           true,
	"industry":          true,
	"company_size":      true,
	"annual_revenue":    true,
	"address":           true,
	"city":              true,
	"state":             true,
	"postal_code":       true,
	"country":           true,
	"source":            true,
	"status":            true,
	"rating":            true,
	"score":             true,
	"assigned_to":       true,
	"lost_reason":       true,
	"lost_at":           true,
	"qualification":     true,
	"qualified_at":      true,
	"last_contacted_at": true,
	"tags":              true,
	"description":       true,
	"notes":             true,
	"updated_by":        true,
	"updated_at":        true,
}

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	// Omit associations to avoid GORM trying to validate related records
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lead).Error
}

// GetByID fetches a lead by id within one tenant. A lead belonging to a
// different tenant comes back as gorm.ErrRecordNotFound, indistinguishable
// from a lead that does not exist.
func (r *LeadRepository) GetByID(ctx context.Context, tenantID domain.TenantID, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	query := r.db.WithContext(ctx).Where("id = ?", id)
	query = ApplyTenantScope(query, tenantID)
	err := query.First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// UpdateFields applies a partial update built from whitelisted columns.
// Unknown column names fail before any statement reaches the database.
func (r *LeadRepository) UpdateFields(ctx context.Context, tenantID domain.TenantID, id uuid.UUID, updates map[string]interface{}) error {
	for column := range updates {
		if !leadUpdateColumns[column] {
			return fmt.Errorf("column %q is not updatable", column)
		}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}

	query := r.db.WithContext(ctx).Model(&domain.Lead{}).Where("id = ?", id)
	query = ApplyTenantScope(query, tenantID)
	return query.Updates(updates).Error
}

func (r *LeadRepository) List(ctx context.Context, tenantID domain.TenantID, offset, limit int, filters *domain.LeadFilters) ([]domain.Lead, int64, error) {
	var leads []domain.Lead
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Lead{})
	query = ApplyTenantScope(query, tenantID)
	query = r.applyFilters(query, filters)

	// Count total matching records
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if offset < 0 {
		offset = 0
	}
	limit = ClampLimit(limit)

	// Fixed sort: most recent first
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&leads).Error

	return leads, total, err
}

// ListAll returns every lead in a tenant ordered oldest first, for exports
func (r *LeadRepository) ListAll(ctx context.Context, tenantID domain.TenantID) ([]domain.Lead, error) {
	var leads []domain.Lead
	query := r.db.WithContext(ctx).Model(&domain.Lead{})
	query = ApplyTenantScope(query, tenantID)
	err := query.Order("created_at ASC").Find(&leads).Error
	return leads, err
}

// OwnerLoad holds how many leads one owner currently carries
type OwnerLoad struct {
	AssignedTo string
	Count      int64
}

// CountByOwner returns lead counts per owner for one tenant, least loaded
// first with ties broken by owner id. The read takes no lock: two
// concurrent creates may both pick the same owner, which is acceptable
// because ownership is advisory.
func (r *LeadRepository) CountByOwner(ctx context.Context, tenantID domain.TenantID) ([]OwnerLoad, error) {
	var loads []OwnerLoad
	query := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Select("assigned_to, COUNT(*) as count").
		Where("assigned_to IS NOT NULL AND assigned_to <> ''").
		Group("assigned_to").
		Order("count ASC, assigned_to ASC")
	query = ApplyTenantScope(query, tenantID)
	err := query.Scan(&loads).Error
	return loads, err
}

// LeadStats holds raw aggregation results for a tenant's pipeline
type LeadStats struct {
	Total          int64
	ConvertedCount int64
	AverageScore   float64
	ByStatus       map[domain.LeadStatus]int64
	ByRating       map[domain.LeadRating]int64
	BySource       map[domain.LeadSource]int64
}

// GetStats aggregates lead counts, conversion and score figures for one
// tenant, optionally narrowed by creation date range and assignee.
func (r *LeadRepository) GetStats(ctx context.Context, tenantID domain.TenantID, filters *domain.LeadStatsFilters) (*LeadStats, error) {
	stats := &LeadStats{
		ByStatus: make(map[domain.LeadStatus]int64),
		ByRating: make(map[domain.LeadRating]int64),
		BySource: make(map[domain.LeadSource]int64),
	}

	base := func() *gorm.DB {
		query := r.db.WithContext(ctx).Model(&domain.Lead{})
		query = ApplyTenantScope(query, tenantID)
		return r.applyStatsFilters(query, filters)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	if err := base().Where("converted_to_customer = ?", true).Count(&stats.ConvertedCount).Error; err != nil {
		return nil, err
	}

	var avg struct {
		AvgScore float64
	}
	if err := base().Select("COALESCE(AVG(score), 0) as avg_score").Scan(&avg).Error; err != nil {
		return nil, err
	}
	stats.AverageScore = avg.AvgScore

	type statusRow struct {
		Status domain.LeadStatus
		Count  int64
	}
	var statusRows []statusRow
	if err := base().Select("status, COUNT(*) as count").Group("status").Scan(&statusRows).Error; err != nil {
		return nil, err
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	type ratingRow struct {
		Rating domain.LeadRating
		Count  int64
	}
	var ratingRows []ratingRow
	if err := base().Select("rating, COUNT(*) as count").Where("rating <> ''").Group("rating").Scan(&ratingRows).Error; err != nil {
		return nil, err
	}
	for _, row := range ratingRows {
		stats.ByRating[row.Rating] = row.Count
	}

	type sourceRow struct {
		Source domain.LeadSource
		Count  int64
	}
	var sourceRows []sourceRow
	if err := base().Select("source, COUNT(*) as count").Group("source").Scan(&sourceRows).Error; err != nil {
		return nil, err
	}
	for _, row := range sourceRows {
		stats.BySource[row.Source] = row.Count
	}

	return stats, nil
}

// WithTransaction executes operations within a transaction
func (r *LeadRepository) WithTransaction(ctx context.Context, fn func(*gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// applyFilters applies all filter criteria to the query
func (r *LeadRepository) applyFilters(query *gorm.DB, filters *domain.LeadFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if filters.Source != nil {
		query = query.Where("source = ?", *filters.Source)
	}

	if filters.Rating != nil {
		query = query.Where("rating = ?", *filters.Rating)
	}

	if filters.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filters.AssignedTo)
	}

	if filters.MinScore != nil {
		query = query.Where("score >= ?", *filters.MinScore)
	}

	if filters.Converted != nil {
		query = query.Where("converted_to_customer = ?", *filters.Converted)
	}

	return query
}

// applyStatsFilters narrows stats aggregation by date range and assignee
func (r *LeadRepository) applyStatsFilters(query *gorm.DB, filters *domain.LeadStatsFilters) *gorm.DB {
	if filters == nil {
		return query
	}

	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}

	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}

	if filters.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filters.AssignedTo)
	}

	return query
}
