package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/service"
	"go.uber.org/zap"
)

type LeadHandler struct {
	leadService   *service.LeadService
	statsService  *service.LeadStatsService
	exportService *service.LeadExportService
	logger        *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, statsService *service.LeadStatsService, exportService *service.LeadExportService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService:   leadService,
		statsService:  statsService,
		exportService: exportService,
		logger:        logger,
	}
}

// @Summary List leads
// @Description List leads with optional filters, newest first
// @Tags Leads
// @Produce json
// @Param offset query int false "Offset into the result set" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Param status query string false "Filter by status (new, contacted, qualified, unqualified, nurturing, converted, lost)"
// @Param source query string false "Filter by source"
// @Param rating query string false "Filter by rating (hot, warm, cold)"
// @Param assignedTo query string false "Filter by assigned owner"
// @Param minScore query int false "Minimum score (0-100)"
// @Param converted query bool false "Filter by conversion state"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	filters := &domain.LeadFilters{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.LeadStatus(s)
		filters.Status = &status
	}
	if src := r.URL.Query().Get("source"); src != "" {
		source := domain.LeadSource(src)
		filters.Source = &source
	}
	if rt := r.URL.Query().Get("rating"); rt != "" {
		rating := domain.LeadRating(rt)
		filters.Rating = &rating
	}
	if owner := r.URL.Query().Get("assignedTo"); owner != "" {
		filters.AssignedTo = &owner
	}
	if ms := r.URL.Query().Get("minScore"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil {
			filters.MinScore = &v
		}
	}
	if conv := r.URL.Query().Get("converted"); conv != "" {
		if v, err := strconv.ParseBool(conv); err == nil {
			filters.Converted = &v
		}
	}

	result, err := h.leadService.List(r.Context(), offset, limit, filters)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		h.logger.Error("failed to list leads", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Create lead
// @Description Create a new lead; the initial score and owner are assigned automatically
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body domain.CreateLeadRequest true "Lead data"
// @Success 201 {object} domain.LeadDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create lead", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}

	w.Header().Set("Location", "/api/v1/leads/"+lead.ID.String())
	respondJSON(w, http.StatusCreated, lead)
}

// @Summary Get lead
// @Description Get a lead by ID
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.LeadDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	lead, err := h.leadService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.logger.Error("failed to get lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// @Summary Update lead
// @Description Partially update a lead; the score is recomputed when scoring fields change
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} domain.LeadDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id} [patch]
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.UpdateLeadRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		if errors.Is(err, service.ErrInvalidTransition) || errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to update lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// @Summary Qualify lead
// @Description Run the qualification workflow: score the answers, bump the lead score and mark it qualified
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.QualifyLeadRequest true "Qualification answers"
// @Success 200 {object} domain.LeadDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/qualify [post]
func (h *LeadHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.QualifyLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Qualify(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		if errors.Is(err, service.ErrInvalidTransition) || errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, "Failed to qualify lead: "+err.Error())
			return
		}
		h.logger.Error("failed to qualify lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to qualify lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// @Summary Convert lead
// @Description Convert a lead into a customer; a second conversion attempt returns 409
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.ConvertLeadRequest true "Conversion data"
// @Success 200 {object} domain.ConvertLeadResponse
// @Failure 409 {object} domain.APIError "Lead is already converted"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.ConvertLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.leadService.Convert(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		if errors.Is(err, service.ErrAlreadyConverted) {
			respondWithError(w, http.StatusConflict, "Lead is already converted")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to convert lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to convert lead")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Assign lead
// @Description Assign a lead to an owner, or rebalance it when no owner is given
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.AssignLeadRequest true "Assignment data"
// @Success 200 {object} domain.LeadDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/assign [post]
func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	lead, err := h.leadService.Assign(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.logger.Error("failed to assign lead", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to assign lead")
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// @Summary List lead activities
// @Description List activities logged against a lead, newest first
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Param offset query int false "Offset into the result set" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Param type query string false "Filter by activity type (call, email, meeting, note, task)"
// @Success 200 {object} domain.PaginatedResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/activities [get]
func (h *LeadHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}

	filters := &domain.LeadActivityFilters{}
	if t := r.URL.Query().Get("type"); t != "" {
		activityType := domain.LeadActivityType(t)
		filters.ActivityType = &activityType
	}

	result, err := h.leadService.ListActivities(r.Context(), id, offset, limit, filters)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.logger.Error("failed to list lead activities", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to list lead activities")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// @Summary Log lead activity
// @Description Record a call, email, meeting, note or task against a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body domain.CreateLeadActivityRequest true "Activity data"
// @Success 201 {object} domain.LeadActivityDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/activities [post]
func (h *LeadHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	var req domain.CreateLeadActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	activity, err := h.leadService.CreateActivity(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		if errors.Is(err, service.ErrInvalidInput) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to create lead activity", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to create lead activity")
		return
	}

	respondJSON(w, http.StatusCreated, activity)
}

// @Summary Get lead history
// @Description Get the lifecycle event journal for a lead, newest first
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {array} domain.LifecycleEventDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/{id}/history [get]
func (h *LeadHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid lead ID: must be a valid UUID")
		return
	}

	history, err := h.leadService.GetHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Lead not found")
			return
		}
		h.logger.Error("failed to get lead history", zap.Error(err), zap.String("lead_id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get lead history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// @Summary Get lead statistics
// @Description Funnel summary: totals by status and source, conversion rate, average score and rating counts
// @Tags Leads
// @Produce json
// @Param from query string false "Created after date (YYYY-MM-DD)"
// @Param to query string false "Created before date (YYYY-MM-DD)"
// @Param assignedTo query string false "Restrict to one owner"
// @Success 200 {object} domain.LeadStatsDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/stats [get]
func (h *LeadHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	filters := &domain.LeadStatsFilters{}

	if f := r.URL.Query().Get("from"); f != "" {
		if t, err := time.Parse("2006-01-02", f); err == nil {
			filters.From = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filters.To = &t
		}
	}
	if owner := r.URL.Query().Get("assignedTo"); owner != "" {
		filters.AssignedTo = &owner
	}

	stats, err := h.statsService.GetStats(r.Context(), filters)
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		h.logger.Error("failed to get lead stats", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get lead stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// @Summary Export leads
// @Description Download the tenant's full lead book as CSV
// @Tags Leads
// @Produce text/csv
// @Success 200
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /leads/export [get]
func (h *LeadHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, filename, err := h.exportService.ExportCSV(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoTenant) {
			respondWithError(w, http.StatusForbidden, "No tenant resolved for caller")
			return
		}
		h.logger.Error("failed to export leads", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to export leads")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
	w.Header().Set("Content-Type", "text/csv")

	_, _ = w.Write(data)
}
