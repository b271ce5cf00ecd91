package repository

import (
	"context"

	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

// TenantRepository handles database operations for tenants
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// GetByID retrieves a tenant by its ID
func (r *TenantRepository) GetByID(ctx context.Context, id domain.TenantID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListActive returns all active tenants
func (r *TenantRepository) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// ListAll returns all tenants including inactive ones
func (r *TenantRepository) ListAll(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&tenants).Error
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// Create persists a new tenant row. Used by provisioning and by test setup.
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}
