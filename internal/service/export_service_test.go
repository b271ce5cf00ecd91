package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/service"
	"github.com/pipeforge/lead-api/internal/storage"
	"github.com/pipeforge/lead-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLeadExportService_ExportCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	svc := service.NewLeadExportService(leadRepo, nil, zap.NewNop())
	ctx := testutil.ContextWithUser("acme", "user-1")

	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	owner := "alice"
	first := &domain.Lead{
		TenantID:    "acme",
		LeadNumber:  "LEAD-00001",
		ContactName: "Jane Prospect",
		CompanyName: "Prospect AS",
		Email:       "jane@prospect.example",
		Source:      domain.LeadSourceWebsite,
		Status:      domain.LeadStatusContacted,
		Rating:      domain.LeadRatingWarm,
		Score:       45,
		AssignedTo:  &owner,
	}
	first.CreatedAt = base
	require.NoError(t, db.Create(first).Error)

	second := &domain.Lead{
		TenantID:    "acme",
		LeadNumber:  "LEAD-00002",
		ContactName: "John Lead",
		Source:      domain.LeadSourceReferral,
		Status:      domain.LeadStatusNew,
		Score:       30,
	}
	second.CreatedAt = base.Add(time.Hour)
	require.NoError(t, db.Create(second).Error)

	// Another tenant's leads never reach the export
	foreign := &domain.Lead{
		TenantID:    "globex",
		LeadNumber:  "LEAD-00001",
		ContactName: "Other",
		Source:      domain.LeadSourceWebsite,
		Status:      domain.LeadStatusNew,
	}
	require.NoError(t, db.Create(foreign).Error)

	data, filename, err := svc.ExportCSV(ctx)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "leads-acme-"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"lead_number", "company_name", "contact_name", "email", "phone",
		"status", "source", "rating", "score", "assigned_to",
		"converted", "converted_at", "created_at",
	}, records[0])

	// Oldest first
	assert.Equal(t, "LEAD-00001", records[1][0])
	assert.Equal(t, "Prospect AS", records[1][1])
	assert.Equal(t, "alice", records[1][9])
	assert.Equal(t, "false", records[1][10])
	assert.Equal(t, "LEAD-00002", records[2][0])
}

func TestLeadExportService_ExportCSV_EmptyTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewLeadExportService(repository.NewLeadRepository(db), nil, zap.NewNop())
	ctx := testutil.ContextWithUser("acme", "user-1")

	data, _, err := svc.ExportCSV(ctx)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestLeadExportService_ExportCSV_RequiresTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewLeadExportService(repository.NewLeadRepository(db), nil, zap.NewNop())

	_, _, err := svc.ExportCSV(context.Background())
	assert.ErrorIs(t, err, service.ErrNoTenant)
}

func TestLeadExportService_ArchivesCopy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	svc := service.NewLeadExportService(repository.NewLeadRepository(db), store, zap.NewNop())
	ctx := testutil.ContextWithUser("acme", "user-1")

	lead := &domain.Lead{
		TenantID:    "acme",
		LeadNumber:  "LEAD-00001",
		ContactName: "Jane Prospect",
		Source:      domain.LeadSourceWebsite,
		Status:      domain.LeadStatusNew,
	}
	require.NoError(t, db.Create(lead).Error)

	_, _, err = svc.ExportCSV(ctx)
	require.NoError(t, err)

	var archived int
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			archived++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, archived)
}
