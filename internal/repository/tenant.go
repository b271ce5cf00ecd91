package repository

import (
	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

// MaxListLimit is the maximum allowed page size for list queries
const MaxListLimit = 100

// DefaultListLimit is applied when the caller does not request a page size
const DefaultListLimit = 20

// ClampLimit normalizes a requested page size into [1, MaxListLimit]
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// ApplyTenantScope constrains a query to a single tenant's rows. The
// tenant predicate is mandatory on every lead read and write; callers
// resolve the tenant before reaching the repository layer and there is
// no unscoped variant.
func ApplyTenantScope(query *gorm.DB, tenantID domain.TenantID) *gorm.DB {
	return query.Where("tenant_id = ?", tenantID)
}

// ApplyTenantScopeWithAlias constrains a query to one tenant using a table
// alias. Use this when joining tables that each carry a tenant_id column.
func ApplyTenantScopeWithAlias(query *gorm.DB, tableAlias string, tenantID domain.TenantID) *gorm.DB {
	return query.Where(tableAlias+".tenant_id = ?", tenantID)
}
