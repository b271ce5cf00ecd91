package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/storage"
)

// LeadExportService writes a tenant's full lead book to CSV. When a storage
// backend is configured a copy of every export is archived there as well, so
// ops can pull historical snapshots without hitting the API again.
type LeadExportService struct {
	leadRepo *repository.LeadRepository
	store    storage.Storage
	logger   *zap.Logger
}

// NewLeadExportService creates a new lead export service. The storage backend
// may be nil, in which case exports are returned to the caller only.
func NewLeadExportService(leadRepo *repository.LeadRepository, store storage.Storage, logger *zap.Logger) *LeadExportService {
	return &LeadExportService{
		leadRepo: leadRepo,
		store:    store,
		logger:   logger,
	}
}

// exportColumns is the fixed CSV header. Column order is part of the export
// contract; downstream spreadsheets key on it.
var exportColumns = []string{
	"lead_number",
	"company_name",
	"contact_name",
	"email",
	"phone",
	"status",
	"source",
	"rating",
	"score",
	"assigned_to",
	"converted",
	"converted_at",
	"created_at",
}

// ExportCSV renders every lead in the caller's tenant as CSV, oldest first.
// Returns the file content and a timestamped filename. Archiving the copy is
// best-effort; a storage failure is logged but does not fail the export.
func (s *LeadExportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, "", err
	}

	leads, err := s.leadRepo.ListAll(ctx, tenantID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list leads for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range leads {
		lead := &leads[i]

		assignedTo := ""
		if lead.AssignedTo != nil {
			assignedTo = *lead.AssignedTo
		}
		convertedAt := ""
		if lead.ConvertedAt != nil {
			convertedAt = lead.ConvertedAt.Format("2006-01-02T15:04:05Z")
		}

		record := []string{
			lead.LeadNumber,
			lead.CompanyName,
			lead.ContactName,
			lead.Email,
			lead.Phone,
			string(lead.Status),
			string(lead.Source),
			string(lead.Rating),
			strconv.Itoa(lead.Score),
			assignedTo,
			strconv.FormatBool(lead.ConvertedToCustomer),
			convertedAt,
			lead.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
		if err := w.Write(record); err != nil {
			return nil, "", fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("leads-%s-%s.csv", tenantID, time.Now().UTC().Format("20060102-150405"))

	s.archiveExport(ctx, filename, buf.Bytes())

	s.logger.Info("Lead export generated",
		zap.String("tenantID", string(tenantID)),
		zap.String("filename", filename),
		zap.Int("leadCount", len(leads)),
	)

	return buf.Bytes(), filename, nil
}

// archiveExport uploads a copy of the export to the configured storage
// backend. Failures are logged and swallowed; the caller already holds the
// generated file.
func (s *LeadExportService) archiveExport(ctx context.Context, filename string, data []byte) {
	if s.store == nil {
		return
	}

	storagePath, size, err := s.store.Upload(ctx, filename, "text/csv", bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("Failed to archive lead export",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Lead export archived",
		zap.String("filename", filename),
		zap.String("storagePath", storagePath),
		zap.Int64("size", size),
	)
}
