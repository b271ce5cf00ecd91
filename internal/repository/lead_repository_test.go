package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestLead(t *testing.T, repo *repository.LeadRepository, tenantID domain.TenantID, number string, mutate func(*domain.Lead)) *domain.Lead {
	t.Helper()

	lead := &domain.Lead{
		TenantID:    tenantID,
		LeadNumber:  number,
		ContactName: "Jane Prospect",
		Source:      domain.LeadSourceWebsite,
		Status:      domain.LeadStatusNew,
	}
	if mutate != nil {
		mutate(lead)
	}
	require.NoError(t, repo.Create(context.Background(), lead))
	return lead
}

func TestLeadRepository_TenantIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	lead := createTestLead(t, repo, "acme", "LEAD-00001", nil)

	// Same tenant sees the lead
	found, err := repo.GetByID(ctx, "acme", lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, found.ID)

	// Another tenant gets record-not-found, same as a missing lead
	_, err = repo.GetByID(ctx, "globex", lead.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	leads, total, err := repo.List(ctx, "globex", 0, 20, nil)
	require.NoError(t, err)
	assert.Empty(t, leads)
	assert.Equal(t, int64(0), total)
}

func TestLeadRepository_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, number := range []string{"LEAD-00001", "LEAD-00002", "LEAD-00003"} {
		offset := time.Duration(i) * time.Hour
		createTestLead(t, repo, "acme", number, func(l *domain.Lead) {
			l.CreatedAt = base.Add(offset)
			l.UpdatedAt = base.Add(offset)
		})
	}

	leads, total, err := repo.List(ctx, "acme", 0, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, leads, 3)
	assert.Equal(t, "LEAD-00003", leads[0].LeadNumber)
	assert.Equal(t, "LEAD-00002", leads[1].LeadNumber)
	assert.Equal(t, "LEAD-00001", leads[2].LeadNumber)
}

func TestLeadRepository_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	createTestLead(t, repo, "acme", "LEAD-00001", func(l *domain.Lead) {
		l.Status = domain.LeadStatusContacted
		l.Source = domain.LeadSourceReferral
		l.Rating = domain.LeadRatingHot
		l.Score = 80
		owner := "alice"
		l.AssignedTo = &owner
	})
	createTestLead(t, repo, "acme", "LEAD-00002", func(l *domain.Lead) {
		l.Status = domain.LeadStatusNew
		l.Score = 20
	})
	createTestLead(t, repo, "acme", "LEAD-00003", func(l *domain.Lead) {
		l.Status = domain.LeadStatusConverted
		l.ConvertedToCustomer = true
		l.Score = 95
	})

	status := domain.LeadStatusContacted
	leads, total, err := repo.List(ctx, "acme", 0, 20, &domain.LeadFilters{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, leads, 1)
	assert.Equal(t, "LEAD-00001", leads[0].LeadNumber)

	minScore := 50
	leads, total, err = repo.List(ctx, "acme", 0, 20, &domain.LeadFilters{MinScore: &minScore})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, leads, 2)

	converted := true
	leads, _, err = repo.List(ctx, "acme", 0, 20, &domain.LeadFilters{Converted: &converted})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "LEAD-00003", leads[0].LeadNumber)

	owner := "alice"
	source := domain.LeadSourceReferral
	leads, _, err = repo.List(ctx, "acme", 0, 20, &domain.LeadFilters{
		AssignedTo: &owner,
		Source:     &source,
	})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "LEAD-00001", leads[0].LeadNumber)
}

func TestLeadRepository_UpdateFields_RejectsUnknownColumn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	lead := createTestLead(t, repo, "acme", "LEAD-00001", nil)

	err := repo.UpdateFields(ctx, "acme", lead.ID, map[string]interface{}{
		"contact_name": "New Name",
		"lead_number":  "LEAD-99999",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not updatable")

	// Nothing was applied; the whole update is rejected
	found, err := repo.GetByID(ctx, "acme", lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Prospect", found.ContactName)
	assert.Equal(t, "LEAD-00001", found.LeadNumber)
}

func TestLeadRepository_UpdateFields_ScopedToTenant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	lead := createTestLead(t, repo, "acme", "LEAD-00001", nil)

	err := repo.UpdateFields(ctx, "globex", lead.ID, map[string]interface{}{
		"contact_name": "Hijacked",
	})
	require.NoError(t, err)

	found, err := repo.GetByID(ctx, "acme", lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Prospect", found.ContactName)
}

func TestLeadRepository_CountByOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	owners := []string{"alice", "alice", "bob", "carol"}
	for i, owner := range owners {
		o := owner
		createTestLead(t, repo, "acme", fmt.Sprintf("LEAD-%05d", i+1), func(l *domain.Lead) {
			l.AssignedTo = &o
		})
	}
	// Unassigned leads do not appear in the load table
	createTestLead(t, repo, "acme", "LEAD-00009", nil)

	loads, err := repo.CountByOwner(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, loads, 3)

	// Least loaded first, ties broken by owner identifier
	assert.Equal(t, "bob", loads[0].AssignedTo)
	assert.Equal(t, int64(1), loads[0].Count)
	assert.Equal(t, "carol", loads[1].AssignedTo)
	assert.Equal(t, int64(1), loads[1].Count)
	assert.Equal(t, "alice", loads[2].AssignedTo)
	assert.Equal(t, int64(2), loads[2].Count)
}

func TestLeadRepository_GetStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	createTestLead(t, repo, "acme", "LEAD-00001", func(l *domain.Lead) {
		l.Status = domain.LeadStatusNew
		l.Source = domain.LeadSourceWebsite
		l.Rating = domain.LeadRatingHot
		l.Score = 80
	})
	createTestLead(t, repo, "acme", "LEAD-00002", func(l *domain.Lead) {
		l.Status = domain.LeadStatusConverted
		l.Source = domain.LeadSourceReferral
		l.Rating = domain.LeadRatingWarm
		l.Score = 100
		l.ConvertedToCustomer = true
	})
	createTestLead(t, repo, "acme", "LEAD-00003", func(l *domain.Lead) {
		l.Status = domain.LeadStatusNew
		l.Source = domain.LeadSourceWebsite
		l.Score = 30
	})
	// Another tenant's lead stays out of the aggregation
	createTestLead(t, repo, "globex", "LEAD-00001", func(l *domain.Lead) {
		l.Score = 1
	})

	stats, err := repo.GetStats(ctx, "acme", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.ConvertedCount)
	assert.InDelta(t, 70.0, stats.AverageScore, 0.001)
	assert.Equal(t, int64(2), stats.ByStatus[domain.LeadStatusNew])
	assert.Equal(t, int64(1), stats.ByStatus[domain.LeadStatusConverted])
	assert.Equal(t, int64(1), stats.ByRating[domain.LeadRatingHot])
	assert.Equal(t, int64(1), stats.ByRating[domain.LeadRatingWarm])
	assert.Equal(t, int64(0), stats.ByRating[domain.LeadRatingCold])
	assert.Equal(t, int64(2), stats.BySource[domain.LeadSourceWebsite])
	assert.Equal(t, int64(1), stats.BySource[domain.LeadSourceReferral])
}

func TestLeadRepository_GetStats_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	createTestLead(t, repo, "acme", "LEAD-00001", func(l *domain.Lead) {
		l.CreatedAt = old
		l.Score = 10
	})
	createTestLead(t, repo, "acme", "LEAD-00002", func(l *domain.Lead) {
		l.CreatedAt = recent
		l.Score = 50
		owner := "alice"
		l.AssignedTo = &owner
	})

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	stats, err := repo.GetStats(ctx, "acme", &domain.LeadStatsFilters{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.InDelta(t, 50.0, stats.AverageScore, 0.001)

	owner := "alice"
	stats, err = repo.GetStats(ctx, "acme", &domain.LeadStatsFilters{AssignedTo: &owner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
}

func TestLeadRepository_ListAll_OldestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestLead(t, repo, "acme", "LEAD-00002", func(l *domain.Lead) {
		l.CreatedAt = base.Add(time.Hour)
	})
	createTestLead(t, repo, "acme", "LEAD-00001", func(l *domain.Lead) {
		l.CreatedAt = base
	})

	leads, err := repo.ListAll(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "LEAD-00001", leads[0].LeadNumber)
	assert.Equal(t, "LEAD-00002", leads[1].LeadNumber)
}

func TestLeadRepository_Create_AssignsID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewLeadRepository(db)

	lead := createTestLead(t, repo, "acme", "LEAD-00001", nil)
	assert.NotEqual(t, uuid.Nil, lead.ID)
}
