package testutil

import (
	"context"
	"testing"

	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database, so tests never need to
// clean up after each other.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to open in-memory database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&domain.Tenant{},
		&domain.Lead{},
		&domain.LeadActivity{},
		&domain.LifecycleEvent{},
		&domain.LeadNumberSequence{},
		&domain.Notification{},
	)
	require.NoError(t, err, "failed to migrate test schema")

	return db
}

// ContextWithUser builds a context carrying an authenticated caller for the
// given tenant.
func ContextWithUser(tenantID domain.TenantID, userID string) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{
		UserID:      userID,
		DisplayName: "Test User",
		Email:       "test@example.com",
		Roles:       []domain.UserRoleType{domain.RoleRep},
		TenantID:    tenantID,
	})
}

// CreateTestTenant inserts a tenant row.
func CreateTestTenant(t *testing.T, db *gorm.DB, id domain.TenantID, name string) *domain.Tenant {
	t.Helper()

	tenant := &domain.Tenant{
		ID:       id,
		Name:     name,
		IsActive: true,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}
