package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/mapper"
	"github.com/pipeforge/lead-api/internal/repository"
	"github.com/pipeforge/lead-api/internal/scoring"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// requireTenant resolves the caller's tenant before any read or write. An
// operation without a tenant is rejected outright, with no partial effects.
func requireTenant(ctx context.Context) (domain.TenantID, error) {
	tenantID, ok := auth.TenantFromContext(ctx)
	if !ok {
		return "", ErrNoTenant
	}
	return tenantID, nil
}

// actorFromContext returns the caller's identifier for audit fields. Blank
// when the context carries no authenticated user.
func actorFromContext(ctx context.Context) string {
	if userCtx, ok := auth.FromContext(ctx); ok {
		return userCtx.UserID
	}
	return ""
}

func equalOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LeadService owns the lead lifecycle: creation, partial updates, the
// qualification workflow, one-way conversion, ownership, activities, and the
// journal. Every operation resolves the caller's tenant first and passes it
// down explicitly.
type LeadService struct {
	leadRepo         *repository.LeadRepository
	activityRepo     *repository.LeadActivityRepository
	eventRepo        *repository.LifecycleEventRepository
	notificationRepo *repository.NotificationRepository
	numberSvc        *LeadNumberService
	assignmentSvc    *AssignmentService
	logger           *zap.Logger
}

func NewLeadService(
	leadRepo *repository.LeadRepository,
	activityRepo *repository.LeadActivityRepository,
	eventRepo *repository.LifecycleEventRepository,
	notificationRepo *repository.NotificationRepository,
	numberSvc *LeadNumberService,
	assignmentSvc *AssignmentService,
	logger *zap.Logger,
) *LeadService {
	return &LeadService{
		leadRepo:         leadRepo,
		activityRepo:     activityRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		numberSvc:        numberSvc,
		assignmentSvc:    assignmentSvc,
		logger:           logger,
	}
}

func (s *LeadService) Create(ctx context.Context, req *domain.CreateLeadRequest) (*domain.LeadDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if !req.Source.IsValid() {
		return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}
	if req.Rating != "" && !req.Rating.IsValid() {
		return nil, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, req.Rating)
	}
	if req.CompanySize != "" && !req.CompanySize.IsValid() {
		return nil, fmt.Errorf("%w: unknown company size %q", ErrInvalidInput, req.CompanySize)
	}

	owner, err := s.assignmentSvc.PickOwner(ctx, tenantID, req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to pick owner: %w", err)
	}

	leadNumber, err := s.numberSvc.GenerateLeadNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	actor := actorFromContext(ctx)

	lead := &domain.Lead{
		TenantID:      tenantID,
		LeadNumber:    leadNumber,
		CompanyName:   req.CompanyName,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		Mobile:        req.Mobile,
		Website:       req.Website,
		Industry:      req.Industry,
		CompanySize:   req.CompanySize,
		AnnualRevenue: req.AnnualRevenue,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Source:        req.Source,
		Status:        domain.LeadStatusNew,
		Rating:        req.Rating,
		AssignedTo:    owner,
		Tags:          req.Tags,
		Description:   req.Description,
		Notes:         req.Notes,
		CreatedBy:     actor,
		UpdatedBy:     actor,
	}
	lead.Score = scoring.Score(lead)

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.appendEvent(ctx, tenantID, lead.ID, domain.EventLeadCreated, map[string]interface{}{
		"leadNumber": lead.LeadNumber,
		"source":     lead.Source,
		"score":      lead.Score,
	})

	if owner != nil {
		s.notifyAssigned(ctx, lead, *owner)
	}

	s.logger.Info("lead created",
		zap.String("tenant_id", string(tenantID)),
		zap.String("lead_id", lead.ID.String()),
		zap.String("lead_number", lead.LeadNumber),
		zap.Int("score", lead.Score))

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

func (s *LeadService) GetByID(ctx context.Context, id uuid.UUID) (*domain.LeadDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

func (s *LeadService) List(ctx context.Context, offset, limit int, filters *domain.LeadFilters) (*domain.PaginatedResponse, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if offset < 0 {
		offset = 0
	}
	limit = repository.ClampLimit(limit)

	leads, total, err := s.leadRepo.List(ctx, tenantID, offset, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	dtos := make([]domain.LeadDTO, len(leads))
	for i := range leads {
		dtos[i] = mapper.ToLeadDTO(&leads[i])
	}

	return &domain.PaginatedResponse{
		Data:   dtos,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

// Update applies a partial update. Field identifiers are fixed by the request
// type and checked again against the repository allow-list, so a column name
// never comes from caller input. A change to the assignee field re-runs the
// balancer; a change to any scoring input recomputes the score.
func (s *LeadService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateLeadRequest) (*domain.LeadDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	updates := map[string]interface{}{}
	scoringChanged := false

	if req.CompanyName != nil {
		lead.CompanyName = *req.CompanyName
		updates["company_name"] = *req.CompanyName
	}
	if req.ContactName != nil {
		lead.ContactName = *req.ContactName
		updates["contact_name"] = *req.ContactName
	}
	if req.Email != nil {
		lead.Email = *req.Email
		updates["email"] = *req.Email
		scoringChanged = true
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
		updates["phone"] = *req.Phone
		scoringChanged = true
	}
	if req.Mobile != nil {
		lead.Mobile = *req.Mobile
		updates["mobile"] = *req.Mobile
		scoringChanged = true
	}
	if req.Website != nil {
		lead.Website = *req.Website
		updates["website"] = *req.Website
		scoringChanged = true
	}
	if req.Industry != nil {
		lead.Industry = *req.Industry
		updates["industry"] = *req.Industry
	}
	if req.CompanySize != nil {
		if *req.CompanySize != "" && !req.CompanySize.IsValid() {
			return nil, fmt.Errorf("%w: unknown company size %q", ErrInvalidInput, *req.CompanySize)
		}
		lead.CompanySize = *req.CompanySize
		updates["company_size"] = *req.CompanySize
		scoringChanged = true
	}
	if req.AnnualRevenue != nil {
		lead.AnnualRevenue = *req.AnnualRevenue
		updates["annual_revenue"] = *req.AnnualRevenue
		scoringChanged = true
	}
	if req.Address != nil {
		lead.Address = *req.Address
		updates["address"] = *req.Address
	}
	if req.City != nil {
		lead.City = *req.City
		updates["city"] = *req.City
		scoringChanged = true
	}
	if req.State != nil {
		lead.State = *req.State
		updates["state"] = *req.State
		scoringChanged = true
	}
	if req.PostalCode != nil {
		lead.PostalCode = *req.PostalCode
		updates["postal_code"] = *req.PostalCode
	}
	if req.Country != nil {
		lead.Country = *req.Country
		updates["country"] = *req.Country
		scoringChanged = true
	}
	if req.Source != nil {
		if !req.Source.IsValid() {
			return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, *req.Source)
		}
		lead.Source = *req.Source
		updates["source"] = *req.Source
		scoringChanged = true
	}
	if req.Rating != nil {
		if *req.Rating != "" && !req.Rating.IsValid() {
			return nil, fmt.Errorf("%w: unknown rating %q", ErrInvalidInput, *req.Rating)
		}
		lead.Rating = *req.Rating
		updates["rating"] = *req.Rating
		scoringChanged = true
	}

	var oldStatus domain.LeadStatus
	statusChanged := false
	if req.Status != nil && *req.Status != lead.Status {
		newStatus := *req.Status
		if !newStatus.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, newStatus)
		}
		if lead.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: %s permits no further transitions", ErrInvalidTransition, lead.Status)
		}
		if newStatus == domain.LeadStatusConverted {
			return nil, fmt.Errorf("%w: converted is reached only through the conversion flow", ErrInvalidTransition)
		}

		oldStatus = lead.Status
		statusChanged = true
		lead.Status = newStatus
		updates["status"] = newStatus
		scoringChanged = true

		if newStatus == domain.LeadStatusLost {
			now := time.Now()
			lead.LostAt = &now
			updates["lost_at"] = now
		}
	}

	if req.LostReason != nil {
		lead.LostReason = *req.LostReason
		updates["lost_reason"] = *req.LostReason
	}

	assigneeChanged := false
	var newOwner *string
	if req.AssignedTo != nil {
		owner, err := s.assignmentSvc.PickOwner(ctx, tenantID, req.AssignedTo)
		if err != nil {
			return nil, fmt.Errorf("failed to pick owner: %w", err)
		}
		assigneeChanged = !equalOwner(lead.AssignedTo, owner)
		newOwner = owner
		lead.AssignedTo = owner
		updates["assigned_to"] = owner
	}

	if req.Tags != nil {
		lead.Tags = pq.StringArray(*req.Tags)
		updates["tags"] = lead.Tags
	}
	if req.Description != nil {
		lead.Description = *req.Description
		updates["description"] = *req.Description
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
		updates["notes"] = *req.Notes
	}

	if scoringChanged {
		lead.Score = scoring.Score(lead)
		updates["score"] = lead.Score
	}

	if len(updates) == 0 {
		dto := mapper.ToLeadDTO(lead)
		return &dto, nil
	}

	if actor := actorFromContext(ctx); actor != "" {
		updates["updated_by"] = actor
	}

	if err := s.leadRepo.UpdateFields(ctx, tenantID, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	if statusChanged {
		s.appendEvent(ctx, tenantID, id, domain.EventStatusChanged, map[string]interface{}{
			"from": oldStatus,
			"to":   lead.Status,
		})
	}

	if assigneeChanged && newOwner != nil {
		s.notifyAssigned(ctx, lead, *newOwner)
	}

	lead, err = s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

// Qualify runs the qualification workflow: it applies the qualification delta
// on top of the current score, stores the inputs as versioned metadata, and
// moves the lead to qualified.
func (s *LeadService) Qualify(ctx context.Context, id uuid.UUID, req *domain.QualifyLeadRequest) (*domain.LeadDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if lead.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s permits no further transitions", ErrInvalidTransition, lead.Status)
	}

	if req.Budget != nil && *req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must be non-negative", ErrInvalidInput)
	}
	if req.Adjustment < -100 || req.Adjustment > 100 {
		return nil, fmt.Errorf("%w: adjustment must be within [-100, 100]", ErrInvalidInput)
	}

	delta := scoring.QualificationDelta(req.Budget, req.Authority, req.Need, req.Timeline, req.Adjustment)
	newScore := scoring.Clamp(lead.Score + delta)
	now := time.Now()

	details := domain.QualificationDetails{
		Version:     domain.QualificationSchemaVersion,
		Budget:      req.Budget,
		Authority:   req.Authority,
		Need:        req.Need,
		Timeline:    req.Timeline,
		Adjustment:  req.Adjustment,
		QualifiedAt: now,
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qualification: %w", err)
	}

	oldStatus := lead.Status
	oldScore := lead.Score

	updates := map[string]interface{}{
		"status":        domain.LeadStatusQualified,
		"score":         newScore,
		"qualification": string(payload),
		"qualified_at":  now,
	}
	if actor := actorFromContext(ctx); actor != "" {
		updates["updated_by"] = actor
	}

	if err := s.leadRepo.UpdateFields(ctx, tenantID, id, updates); err != nil {
		return nil, fmt.Errorf("failed to qualify lead: %w", err)
	}

	if oldStatus != domain.LeadStatusQualified {
		s.appendEvent(ctx, tenantID, id, domain.EventStatusChanged, map[string]interface{}{
			"from": oldStatus,
			"to":   domain.LeadStatusQualified,
		})
	}
	s.appendEvent(ctx, tenantID, id, domain.EventLeadQualified, map[string]interface{}{
		"score": newScore,
		"delta": delta,
	})

	s.logger.Info("lead qualified",
		zap.String("tenant_id", string(tenantID)),
		zap.String("lead_id", id.String()),
		zap.Int("old_score", oldScore),
		zap.Int("new_score", newScore),
		zap.Int("delta", delta))

	lead, err = s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

// Convert performs the one-way lead to customer transition. The flag flip,
// the status change, and both journal entries commit in one transaction; a
// second call on the same lead fails with a conflict and changes nothing.
func (s *LeadService) Convert(ctx context.Context, id uuid.UUID, req *domain.ConvertLeadRequest) (*domain.ConvertLeadResponse, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if lead.ConvertedToCustomer {
		return nil, ErrAlreadyConverted
	}
	if req.CustomerID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}

	actor := actorFromContext(ctx)
	now := time.Now()
	oldStatus := lead.Status

	err = s.leadRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		// Compare-and-set on the converted flag so a concurrent conversion
		// cannot apply twice.
		result := tx.Model(&domain.Lead{}).
			Where("tenant_id = ? AND id = ? AND converted_to_customer = ?", tenantID, id, false).
			Updates(map[string]interface{}{
				"converted_to_customer": true,
				"converted_customer_id": req.CustomerID,
				"converted_at":          now,
				"converted_by":          actor,
				"status":                domain.LeadStatusConverted,
				"updated_by":            actor,
				"updated_at":            now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark lead converted: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyConverted
		}

		statusEvent := &domain.LifecycleEvent{
			TenantID:   tenantID,
			LeadID:     id,
			EventType:  domain.EventStatusChanged,
			Actor:      actor,
			OccurredAt: now,
		}
		if data, err := json.Marshal(map[string]interface{}{
			"from": oldStatus,
			"to":   domain.LeadStatusConverted,
		}); err == nil {
			statusEvent.Payload = string(data)
		}
		if err := tx.Create(statusEvent).Error; err != nil {
			return fmt.Errorf("failed to append status event: %w", err)
		}

		payload := map[string]interface{}{"customerId": req.CustomerID}
		if req.Note != "" {
			payload["note"] = req.Note
		}
		convertedEvent := &domain.LifecycleEvent{
			TenantID:   tenantID,
			LeadID:     id,
			EventType:  domain.EventLeadConverted,
			Actor:      actor,
			OccurredAt: now,
		}
		if data, err := json.Marshal(payload); err == nil {
			convertedEvent.Payload = string(data)
		}
		if err := tx.Create(convertedEvent).Error; err != nil {
			return fmt.Errorf("failed to append converted event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyConverted(ctx, lead, req.CustomerID)

	s.logger.Info("lead converted",
		zap.String("tenant_id", string(tenantID)),
		zap.String("lead_id", id.String()),
		zap.String("customer_id", req.CustomerID.String()))

	lead, err = s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &domain.ConvertLeadResponse{
		Lead:       &dto,
		CustomerID: req.CustomerID,
	}, nil
}

// Assign sets or re-balances ownership. An explicit assignee is used as
// given; a blank one asks the balancer for the least loaded owner.
func (s *LeadService) Assign(ctx context.Context, id uuid.UUID, req *domain.AssignLeadRequest) (*domain.LeadDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	owner, err := s.assignmentSvc.PickOwner(ctx, tenantID, req.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to pick owner: %w", err)
	}

	changed := !equalOwner(lead.AssignedTo, owner)

	updates := map[string]interface{}{"assigned_to": owner}
	if actor := actorFromContext(ctx); actor != "" {
		updates["updated_by"] = actor
	}

	if err := s.leadRepo.UpdateFields(ctx, tenantID, id, updates); err != nil {
		return nil, fmt.Errorf("failed to assign lead: %w", err)
	}

	lead.AssignedTo = owner
	if changed && owner != nil {
		s.notifyAssigned(ctx, lead, *owner)
	}

	lead, err = s.leadRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lead: %w", err)
	}

	dto := mapper.ToLeadDTO(lead)
	return &dto, nil
}

// CreateActivity records a contact-history entry against a lead. The activity
// row is the primary mutation; the contact timestamp and journal entry are
// secondary and must not fail it.
func (s *LeadService) CreateActivity(ctx context.Context, leadID uuid.UUID, req *domain.CreateLeadActivityRequest) (*domain.LeadActivityDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	lead, err := s.leadRepo.GetByID(ctx, tenantID, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if !req.ActivityType.IsValid() {
		return nil, fmt.Errorf("%w: unknown activity type %q", ErrInvalidInput, req.ActivityType)
	}

	activity := &domain.LeadActivity{
		TenantID:        tenantID,
		LeadID:          lead.ID,
		ActivityType:    req.ActivityType,
		Subject:         req.Subject,
		Description:     req.Description,
		Outcome:         req.Outcome,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		AssignedTo:      req.AssignedTo,
		CreatedBy:       actorFromContext(ctx),
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	if err := s.leadRepo.UpdateFields(ctx, tenantID, leadID, map[string]interface{}{
		"last_contacted_at": time.Now(),
	}); err != nil {
		s.logger.Warn("failed to update last contacted timestamp",
			zap.Error(err),
			zap.String("lead_id", leadID.String()))
	}

	s.appendEvent(ctx, tenantID, leadID, domain.EventActivityLogged, map[string]interface{}{
		"activityType": req.ActivityType,
		"subject":      req.Subject,
	})

	dto := mapper.ToLeadActivityDTO(activity)
	return &dto, nil
}

func (s *LeadService) ListActivities(ctx context.Context, leadID uuid.UUID, offset, limit int, filters *domain.LeadActivityFilters) (*domain.PaginatedResponse, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.leadRepo.GetByID(ctx, tenantID, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	if offset < 0 {
		offset = 0
	}
	limit = repository.ClampLimit(limit)

	activities, total, err := s.activityRepo.ListByLead(ctx, tenantID, leadID, offset, limit, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	dtos := make([]domain.LeadActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToLeadActivityDTO(&activities[i])
	}

	return &domain.PaginatedResponse{
		Data:   dtos,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

// GetHistory returns the full lifecycle journal for one lead, newest first.
func (s *LeadService) GetHistory(ctx context.Context, leadID uuid.UUID) ([]domain.LifecycleEventDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.leadRepo.GetByID(ctx, tenantID, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	events, err := s.eventRepo.ListByLead(ctx, tenantID, leadID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lifecycle events: %w", err)
	}

	dtos := make([]domain.LifecycleEventDTO, len(events))
	for i := range events {
		dtos[i] = mapper.ToLifecycleEventDTO(&events[i])
	}
	return dtos, nil
}

// appendEvent writes one journal row. Journal writes that ride along with an
// already committed mutation must not fail it, so errors are logged and
// swallowed here; the conversion flow writes its events inside the
// transaction instead.
func (s *LeadService) appendEvent(ctx context.Context, tenantID domain.TenantID, leadID uuid.UUID, eventType domain.LifecycleEventType, payload map[string]interface{}) {
	event := &domain.LifecycleEvent{
		TenantID:  tenantID,
		LeadID:    leadID,
		EventType: eventType,
		Actor:     actorFromContext(ctx),
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			event.Payload = string(data)
		}
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Warn("failed to append lifecycle event",
			zap.Error(err),
			zap.String("lead_id", leadID.String()),
			zap.String("event_type", string(eventType)))
	}
}

// notifyAssigned tells the new owner about their lead. Best-effort.
func (s *LeadService) notifyAssigned(ctx context.Context, lead *domain.Lead, owner string) {
	if s.notificationRepo == nil {
		return
	}
	if owner == actorFromContext(ctx) {
		return
	}

	notification := &domain.Notification{
		TenantID: lead.TenantID,
		UserID:   owner,
		Type:     string(domain.NotificationTypeLeadAssigned),
		Title:    "Lead assigned",
		Message:  fmt.Sprintf("Lead %s (%s) has been assigned to you", lead.LeadNumber, lead.ContactName),
		LeadID:   &lead.ID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to create assignment notification",
			zap.Error(err),
			zap.String("lead_id", lead.ID.String()))
	}
}

// notifyConverted tells the lead owner about the conversion. Best-effort.
func (s *LeadService) notifyConverted(ctx context.Context, lead *domain.Lead, customerID uuid.UUID) {
	if s.notificationRepo == nil || lead.AssignedTo == nil {
		return
	}
	if *lead.AssignedTo == actorFromContext(ctx) {
		return
	}

	notification := &domain.Notification{
		TenantID: lead.TenantID,
		UserID:   *lead.AssignedTo,
		Type:     string(domain.NotificationTypeLeadConverted),
		Title:    "Lead converted",
		Message:  fmt.Sprintf("Lead %s (%s) was converted to customer %s", lead.LeadNumber, lead.ContactName, customerID),
		LeadID:   &lead.ID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to create conversion notification",
			zap.Error(err),
			zap.String("lead_id", lead.ID.String()))
	}
}
