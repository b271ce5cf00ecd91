package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type LeadDTO struct {
	ID         uuid.UUID `json:"id"`
	LeadNumber string    `json:"leadNumber"`

	CompanyName string `json:"companyName,omitempty"`
	ContactName string `json:"contactName"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Website     string `json:"website,omitempty"`

	Industry      string      `json:"industry,omitempty"`
	CompanySize   CompanySize `json:"companySize,omitempty"`
	AnnualRevenue float64     `json:"annualRevenue"`

	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`

	Source LeadSource `json:"source"`
	Status LeadStatus `json:"status"`
	Rating LeadRating `json:"rating,omitempty"`
	Score  int        `json:"score"`

	AssignedTo *string `json:"assignedTo,omitempty"`

	ConvertedToCustomer bool       `json:"convertedToCustomer"`
	ConvertedCustomerID *uuid.UUID `json:"convertedCustomerId,omitempty"`
	ConvertedAt         string     `json:"convertedAt,omitempty"` // ISO 8601
	ConvertedBy         string     `json:"convertedBy,omitempty"`

	LostReason string `json:"lostReason,omitempty"`
	LostAt     string `json:"lostAt,omitempty"` // ISO 8601

	Qualification   *QualificationDTO `json:"qualification,omitempty"`
	QualifiedAt     string            `json:"qualifiedAt,omitempty"`     // ISO 8601
	LastContactedAt string            `json:"lastContactedAt,omitempty"` // ISO 8601

	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`

	CreatedBy string `json:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty"`
	CreatedAt string `json:"createdAt"` // ISO 8601
	UpdatedAt string `json:"updatedAt"` // ISO 8601
}

// QualificationDTO is the API view of the stored qualification payload
type QualificationDTO struct {
	Budget      *float64 `json:"budget,omitempty"`
	Authority   *bool    `json:"authority,omitempty"`
	Need        string   `json:"need,omitempty"`
	Timeline    string   `json:"timeline,omitempty"`
	Adjustment  int      `json:"adjustment"`
	QualifiedAt string   `json:"qualifiedAt"` // ISO 8601
}

type LeadActivityDTO struct {
	ID              uuid.UUID        `json:"id"`
	LeadID          uuid.UUID        `json:"leadId"`
	ActivityType    LeadActivityType `json:"activityType"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description,omitempty"`
	Outcome         string           `json:"outcome,omitempty"`
	ScheduledAt     string           `json:"scheduledAt,omitempty"` // ISO 8601
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	AssignedTo      string           `json:"assignedTo,omitempty"`
	CreatedBy       string           `json:"createdBy,omitempty"`
	CreatedAt       string           `json:"createdAt"` // ISO 8601
}

type LifecycleEventDTO struct {
	ID         uuid.UUID          `json:"id"`
	LeadID     uuid.UUID          `json:"leadId"`
	EventType  LifecycleEventType `json:"eventType"`
	Payload    interface{}        `json:"payload,omitempty"`
	Actor      string             `json:"actor,omitempty"`
	OccurredAt string             `json:"occurredAt"` // ISO 8601
}

// ConvertLeadResponse contains the result of a successful conversion
type ConvertLeadResponse struct {
	Lead       *LeadDTO  `json:"lead"`
	CustomerID uuid.UUID `json:"customerId"`
}

// LeadStatsDTO holds aggregated pipeline statistics for a tenant
type LeadStatsDTO struct {
	Total          int64            `json:"total"`
	ByStatus       map[string]int64 `json:"byStatus"`
	ConversionRate float64          `json:"conversionRate"` // converted / total, 0-1 scale
	AverageScore   float64          `json:"averageScore"`
	HotCount       int64            `json:"hotCount"`
	WarmCount      int64            `json:"warmCount"`
	ColdCount      int64            `json:"coldCount"`
	BySource       map[string]int64 `json:"bySource"`
}

type TenantDTO struct {
	ID   TenantID `json:"id"`
	Name string   `json:"name"`
}

// AuthUserDTO represents the current authenticated user with full context
type AuthUserDTO struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Roles    []string   `json:"roles"`
	Tenant   *TenantDTO `json:"tenant,omitempty"`
	Initials string     `json:"initials"`
	IsAdmin  bool       `json:"isAdmin"`
}

type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	CreatedAt string     `json:"createdAt"` // ISO 8601
	LeadID    *uuid.UUID `json:"leadId,omitempty"`
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int `json:"count"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Pagination response wrapper
type PaginatedResponse struct {
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Offset int         `json:"offset"`
	Limit  int         `json:"limit"`
}

// API Response wrapper
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// Filters

// LeadFilters provides filtering options for lead list queries
type LeadFilters struct {
	Status     *LeadStatus `json:"status,omitempty"`
	Source     *LeadSource `json:"source,omitempty"`
	Rating     *LeadRating `json:"rating,omitempty"`
	AssignedTo *string     `json:"assignedTo,omitempty"`
	MinScore   *int        `json:"minScore,omitempty"`
	Converted  *bool       `json:"converted,omitempty"`
}

// LeadStatsFilters narrows the stats aggregation window
type LeadStatsFilters struct {
	From       *time.Time `json:"from,omitempty"`
	To         *time.Time `json:"to,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
}

// LeadActivityFilters provides filtering options for activity queries
type LeadActivityFilters struct {
	ActivityType *LeadActivityType `json:"activityType,omitempty"`
}

// Request DTOs

type CreateLeadRequest struct {
	CompanyName string `json:"companyName,omitempty" validate:"max=200"`
	ContactName string `json:"contactName" validate:"required,max=200"`
	Email       string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       string `json:"phone,omitempty" validate:"max=50"`
	Mobile      string `json:"mobile,omitempty" validate:"max=50"`
	Website     string `json:"website,omitempty" validate:"max=255"`

	Industry      string      `json:"industry,omitempty" validate:"max=100"`
	CompanySize   CompanySize `json:"companySize,omitempty"`
	AnnualRevenue float64     `json:"annualRevenue,omitempty" validate:"gte=0"`

	Address    string `json:"address,omitempty" validate:"max=500"`
	City       string `json:"city,omitempty" validate:"max=100"`
	State      string `json:"state,omitempty" validate:"max=100"`
	PostalCode string `json:"postalCode,omitempty" validate:"max=20"`
	Country    string `json:"country,omitempty" validate:"max=100"`

	Source LeadSource `json:"source" validate:"required"`
	Rating LeadRating `json:"rating,omitempty"`

	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,max=100"`

	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// UpdateLeadRequest carries a partial update. Pointer fields distinguish
// absent from zero; unknown field names are rejected at decode time.
type UpdateLeadRequest struct {
	CompanyName *string `json:"companyName,omitempty" validate:"omitempty,max=200"`
	ContactName *string `json:"contactName,omitempty" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Mobile      *string `json:"mobile,omitempty" validate:"omitempty,max=50"`
	Website     *string `json:"website,omitempty" validate:"omitempty,max=255"`

	Industry      *string      `json:"industry,omitempty" validate:"omitempty,max=100"`
	CompanySize   *CompanySize `json:"companySize,omitempty"`
	AnnualRevenue *float64     `json:"annualRevenue,omitempty" validate:"omitempty,gte=0"`

	Address    *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City       *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State      *string `json:"state,omitempty" validate:"omitempty,max=100"`
	PostalCode *string `json:"postalCode,omitempty" validate:"omitempty,max=20"`
	Country    *string `json:"country,omitempty" validate:"omitempty,max=100"`

	Source *LeadSource `json:"source,omitempty"`
	Status *LeadStatus `json:"status,omitempty"`
	Rating *LeadRating `json:"rating,omitempty"`

	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,max=100"`

	LostReason *string `json:"lostReason,omitempty" validate:"omitempty,max=500"`

	Tags        *[]string `json:"tags,omitempty"`
	Description *string   `json:"description,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
}

// QualifyLeadRequest carries the BANT inputs for the qualification workflow
type QualifyLeadRequest struct {
	Budget     *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Authority  *bool    `json:"authority,omitempty"`
	Need       string   `json:"need,omitempty" validate:"max=2000"`
	Timeline   string   `json:"timeline,omitempty" validate:"max=200"`
	Adjustment int      `json:"adjustment,omitempty" validate:"gte=-100,lte=100"`
}

// ConvertLeadRequest links the lead to the customer record it became
type ConvertLeadRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
	Note       string    `json:"note,omitempty" validate:"max=500"`
}

// AssignLeadRequest sets or re-balances lead ownership. An absent or blank
// assignee asks the balancer to pick the least loaded owner.
type AssignLeadRequest struct {
	AssignedTo *string `json:"assignedTo,omitempty" validate:"omitempty,max=100"`
}

// CreateLeadActivityRequest contains the data needed to record a contact activity
type CreateLeadActivityRequest struct {
	ActivityType    LeadActivityType `json:"activityType" validate:"required"`
	Subject         string           `json:"subject" validate:"required,max=200"`
	Description     string           `json:"description,omitempty" validate:"max=2000"`
	Outcome         string           `json:"outcome,omitempty" validate:"max=500"`
	ScheduledAt     *time.Time       `json:"scheduledAt,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty" validate:"omitempty,min=1"`
	AssignedTo      string           `json:"assignedTo,omitempty" validate:"max=100"`
}

// CreateNotificationRequest contains the data needed to create a notification
type CreateNotificationRequest struct {
	UserID  string           `json:"userId" validate:"required,max=100"`
	Type    NotificationType `json:"type" validate:"required"`
	Title   string           `json:"title" validate:"required,max=200"`
	Message string           `json:"message" validate:"required,max=500"`
	LeadID  *uuid.UUID       `json:"leadId,omitempty"`
}
