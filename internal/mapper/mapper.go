package mapper

import (
	"encoding/json"

	"github.com/pipeforge/lead-api/internal/domain"
)

// ToLeadDTO converts Lead to LeadDTO
func ToLeadDTO(lead *domain.Lead) domain.LeadDTO {
	dto := domain.LeadDTO{
		ID:                  lead.ID,
		LeadNumber:          lead.LeadNumber,
		CompanyName:         lead.CompanyName,
		ContactName:         lead.ContactName,
		Email:               lead.Email,
		Phone:               lead.Phone,
		Mobile:              lead.Mobile,
		Website:             lead.Website,
		Industry:            lead.Industry,
		CompanySize:         lead.CompanySize,
		AnnualRevenue:       lead.AnnualRevenue,
		Address:             lead.Address,
		City:                lead.City,
		State:               lead.State,
		PostalCode:          lead.PostalCode,
		Country:             lead.Country,
		Source:              lead.Source,
		Status:              lead.Status,
		Rating:              lead.Rating,
		Score:               lead.Score,
		AssignedTo:          lead.AssignedTo,
		ConvertedToCustomer: lead.ConvertedToCustomer,
		ConvertedCustomerID: lead.ConvertedCustomerID,
		ConvertedBy:         lead.ConvertedBy,
		LostReason:          lead.LostReason,
		Tags:                lead.Tags,
		Description:         lead.Description,
		Notes:               lead.Notes,
		CreatedBy:           lead.CreatedBy,
		UpdatedBy:           lead.UpdatedBy,
		CreatedAt:           lead.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           lead.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if lead.ConvertedAt != nil {
		dto.ConvertedAt = lead.ConvertedAt.Format("2006-01-02T15:04:05Z")
	}
	if lead.LostAt != nil {
		dto.LostAt = lead.LostAt.Format("2006-01-02T15:04:05Z")
	}
	if lead.QualifiedAt != nil {
		dto.QualifiedAt = lead.QualifiedAt.Format("2006-01-02T15:04:05Z")
	}
	if lead.LastContactedAt != nil {
		dto.LastContactedAt = lead.LastContactedAt.Format("2006-01-02T15:04:05Z")
	}

	// The stored qualification payload is versioned JSON; an unreadable
	// payload leaves the field empty instead of failing the whole mapping.
	if lead.Qualification != "" {
		var details domain.QualificationDetails
		if err := json.Unmarshal([]byte(lead.Qualification), &details); err == nil {
			dto.Qualification = &domain.QualificationDTO{
				Budget:      details.Budget,
				Authority:   details.Authority,
				Need:        details.Need,
				Timeline:    details.Timeline,
				Adjustment:  details.Adjustment,
				QualifiedAt: details.QualifiedAt.Format("2006-01-02T15:04:05Z"),
			}
		}
	}

	return dto
}

// ToLeadActivityDTO converts LeadActivity to LeadActivityDTO
func ToLeadActivityDTO(activity *domain.LeadActivity) domain.LeadActivityDTO {
	dto := domain.LeadActivityDTO{
		ID:              activity.ID,
		LeadID:          activity.LeadID,
		ActivityType:    activity.ActivityType,
		Subject:         activity.Subject,
		Description:     activity.Description,
		Outcome:         activity.Outcome,
		DurationMinutes: activity.DurationMinutes,
		AssignedTo:      activity.AssignedTo,
		CreatedBy:       activity.CreatedBy,
		CreatedAt:       activity.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if activity.ScheduledAt != nil {
		dto.ScheduledAt = activity.ScheduledAt.Format("2006-01-02T15:04:05Z")
	}

	return dto
}

// ToLifecycleEventDTO converts LifecycleEvent to LifecycleEventDTO
func ToLifecycleEventDTO(event *domain.LifecycleEvent) domain.LifecycleEventDTO {
	dto := domain.LifecycleEventDTO{
		ID:         event.ID,
		LeadID:     event.LeadID,
		EventType:  event.EventType,
		Actor:      event.Actor,
		OccurredAt: event.OccurredAt.Format("2006-01-02T15:04:05Z"),
	}

	if event.Payload != "" {
		var payload interface{}
		if err := json.Unmarshal([]byte(event.Payload), &payload); err == nil {
			dto.Payload = payload
		}
	}

	return dto
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:        notification.ID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt.Format("2006-01-02T15:04:05Z"),
		LeadID:    notification.LeadID,
	}
}

// ToTenantDTO converts Tenant to TenantDTO
func ToTenantDTO(tenant *domain.Tenant) domain.TenantDTO {
	return domain.TenantDTO{
		ID:   tenant.ID,
		Name: tenant.Name,
	}
}
