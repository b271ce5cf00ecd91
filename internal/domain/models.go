package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the entity ID when the caller did not provide one.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TenantID identifies an isolated customer organization. Every row in the
// lead tables is partitioned by it and every query carries it as a predicate.
type TenantID string

// Tenant represents a registered organization (stored in database)
type Tenant struct {
	ID        TenantID  `gorm:"type:varchar(50);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active" json:"isActive"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName specifies the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}

// LeadStatus represents the lifecycle status of a lead
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualifying  LeadStatus = "qualifying"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
	LeadStatusNurturing   LeadStatus = "nurturing"
	LeadStatusUnqualified LeadStatus = "unqualified"
)

// IsValid checks if the lead status is valid
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualifying, LeadStatusQualified,
		LeadStatusProposal, LeadStatusNegotiation, LeadStatusConverted, LeadStatusLost,
		LeadStatusNurturing, LeadStatusUnqualified:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
// Converted is reached only through the conversion flow, lost only through
// a regular update; neither may move again.
func (s LeadStatus) IsTerminal() bool {
	return s == LeadStatusConverted || s == LeadStatusLost
}

// LeadSource represents the acquisition channel of a lead
type LeadSource string

const (
	LeadSourceWebsite       LeadSource = "website"
	LeadSourceEmail         LeadSource = "email"
	LeadSourcePhone         LeadSource = "phone"
	LeadSourceSocial        LeadSource = "social"
	LeadSourceReferral      LeadSource = "referral"
	LeadSourcePartner       LeadSource = "partner"
	LeadSourceEvent         LeadSource = "event"
	LeadSourceColdOutreach  LeadSource = "cold-outreach"
	LeadSourceAdvertisement LeadSource = "advertisement"
	LeadSourceOther         LeadSource = "other"
)

// IsValid checks if the lead source is valid
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsite, LeadSourceEmail, LeadSourcePhone, LeadSourceSocial,
		LeadSourceReferral, LeadSourcePartner, LeadSourceEvent, LeadSourceColdOutreach,
		LeadSourceAdvertisement, LeadSourceOther:
		return true
	}
	return false
}

// LeadRating represents the sales team's temperature assessment of a lead
type LeadRating string

const (
	LeadRatingHot  LeadRating = "hot"
	LeadRatingWarm LeadRating = "warm"
	LeadRatingCold LeadRating = "cold"
)

// IsValid checks if the lead rating is valid
func (r LeadRating) IsValid() bool {
	switch r {
	case LeadRatingHot, LeadRatingWarm, LeadRatingCold:
		return true
	}
	return false
}

// CompanySize represents the size tier of a lead's company
type CompanySize string

const (
	CompanySizeSmall      CompanySize = "small"
	CompanySizeMid        CompanySize = "mid"
	CompanySizeEnterprise CompanySize = "enterprise"
)

// IsValid checks if the company size is valid
func (c CompanySize) IsValid() bool {
	switch c {
	case CompanySizeSmall, CompanySizeMid, CompanySizeEnterprise:
		return true
	}
	return false
}

// Lead represents a prospective customer tracked from first contact through
// conversion or loss
type Lead struct {
	BaseModel
	TenantID   TenantID `gorm:"type:varchar(50);not null;uniqueIndex:idx_leads_tenant_number;index:idx_leads_tenant_status;index:idx_leads_tenant_owner;column:tenant_id"`
	LeadNumber string   `gorm:"type:varchar(20);not null;uniqueIndex:idx_leads_tenant_number;column:lead_number"`

	CompanyName string `gorm:"type:varchar(200);index;column:company_name"`
	ContactName string `gorm:"type:varchar(200);not null;column:contact_name"`
	Email       string `gorm:"type:varchar(255)"`
	Phone       string `gorm:"type:varchar(50)"`
	Mobile      string `gorm:"type:varchar(50)"`
	Website     string `gorm:"type:varchar(255)"`

	Industry      string      `gorm:"type:varchar(100)"`
	CompanySize   CompanySize `gorm:"type:varchar(20);column:company_size"`
	AnnualRevenue float64     `gorm:"type:decimal(15,2);not null;default:0;column:annual_revenue"`

	Address    string `gorm:"type:varchar(500)"`
	City       string `gorm:"type:varchar(100)"`
	State      string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20);column:postal_code"`
	Country    string `gorm:"type:varchar(100)"`

	Source LeadSource `gorm:"type:varchar(50);not null;index"`
	Status LeadStatus `gorm:"type:varchar(50);not null;default:'new';index:idx_leads_tenant_status"`
	Rating LeadRating `gorm:"type:varchar(20);index"`
	Score  int        `gorm:"not null;default:0;index"`

	AssignedTo *string `gorm:"type:varchar(100);index:idx_leads_tenant_owner;column:assigned_to"`

	ConvertedToCustomer bool       `gorm:"not null;default:false;column:converted_to_customer"`
	ConvertedCustomerID *uuid.UUID `gorm:"type:uuid;column:converted_customer_id"`
	ConvertedAt         *time.Time `gorm:"column:converted_at"`
	ConvertedBy         string     `gorm:"type:varchar(100);column:converted_by"`

	LostReason string     `gorm:"type:varchar(500);column:lost_reason"`
	LostAt     *time.Time `gorm:"column:lost_at"`

	Qualification   string     `gorm:"type:jsonb;column:qualification"`
	QualifiedAt     *time.Time `gorm:"column:qualified_at"`
	LastContactedAt *time.Time `gorm:"column:last_contacted_at"`

	Tags        pq.StringArray `gorm:"type:text[]"`
	Description string         `gorm:"type:text"`
	Notes       string         `gorm:"type:text"`

	CreatedBy string `gorm:"type:varchar(100);column:created_by"`
	UpdatedBy string `gorm:"type:varchar(100);column:updated_by"`
}

// TableName specifies the table name for Lead
func (Lead) TableName() string {
	return "leads"
}

// QualificationSchemaVersion is the current version of the qualification
// payload stored on the lead. Bump it when the structure changes so older
// rows stay readable.
const QualificationSchemaVersion = 1

// QualificationDetails is the typed BANT payload recorded when a lead is
// qualified. Persisted as JSON in Lead.Qualification.
type QualificationDetails struct {
	Version     int       `json:"version"`
	Budget      *float64  `json:"budget,omitempty"`
	Authority   *bool     `json:"authority,omitempty"`
	Need        string    `json:"need,omitempty"`
	Timeline    string    `json:"timeline,omitempty"`
	Adjustment  int       `json:"adjustment"`
	QualifiedAt time.Time `json:"qualifiedAt"`
}

// LeadActivityType represents the kind of contact recorded against a lead
type LeadActivityType string

const (
	LeadActivityCall     LeadActivityType = "call"
	LeadActivityEmail    LeadActivityType = "email"
	LeadActivityMeeting  LeadActivityType = "meeting"
	LeadActivityDemo     LeadActivityType = "demo"
	LeadActivityFollowup LeadActivityType = "followup"
	LeadActivityNote     LeadActivityType = "note"
	LeadActivityTask     LeadActivityType = "task"
)

// IsValid checks if the activity type is valid
func (t LeadActivityType) IsValid() bool {
	switch t {
	case LeadActivityCall, LeadActivityEmail, LeadActivityMeeting, LeadActivityDemo,
		LeadActivityFollowup, LeadActivityNote, LeadActivityTask:
		return true
	}
	return false
}

// LeadActivity is an immutable contact-history record attached to a lead.
// Rows are never updated or deleted after creation.
type LeadActivity struct {
	BaseModel
	TenantID        TenantID         `gorm:"type:varchar(50);not null;index:idx_lead_activities_tenant_lead;column:tenant_id"`
	LeadID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_lead_activities_tenant_lead;column:lead_id"`
	Lead            *Lead            `gorm:"foreignKey:LeadID"`
	ActivityType    LeadActivityType `gorm:"type:varchar(50);not null;index;column:activity_type"`
	Subject         string           `gorm:"type:varchar(200);not null"`
	Description     string           `gorm:"type:text"`
	Outcome         string           `gorm:"type:varchar(500)"`
	ScheduledAt     *time.Time       `gorm:"column:scheduled_at"`
	DurationMinutes *int             `gorm:"column:duration_minutes"`
	AssignedTo      string           `gorm:"type:varchar(100);column:assigned_to"`
	CreatedBy       string           `gorm:"type:varchar(100);column:created_by"`
}

// TableName specifies the table name for LeadActivity
func (LeadActivity) TableName() string {
	return "lead_activities"
}

// LifecycleEventType represents the kind of journal entry recorded for a lead
type LifecycleEventType string

const (
	EventLeadCreated    LifecycleEventType = "created"
	EventStatusChanged  LifecycleEventType = "status_changed"
	EventActivityLogged LifecycleEventType = "activity_logged"
	EventLeadQualified  LifecycleEventType = "qualified"
	EventLeadConverted  LifecycleEventType = "converted"
)

// IsValid checks if the event type is valid
func (t LifecycleEventType) IsValid() bool {
	switch t {
	case EventLeadCreated, EventStatusChanged, EventActivityLogged,
		EventLeadQualified, EventLeadConverted:
		return true
	}
	return false
}

// LifecycleEvent is one append-only journal row. Rows are write-once and
// never deleted. The lead record stays the system of record; the journal
// exists for audit and history queries.
type LifecycleEvent struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TenantID   TenantID           `gorm:"type:varchar(50);not null;index:idx_lifecycle_events_tenant_lead;column:tenant_id"`
	LeadID     uuid.UUID          `gorm:"type:uuid;not null;index:idx_lifecycle_events_tenant_lead;column:lead_id"`
	EventType  LifecycleEventType `gorm:"type:varchar(50);not null;index;column:event_type"`
	Payload    string             `gorm:"type:jsonb"`
	Actor      string             `gorm:"type:varchar(100)"`
	OccurredAt time.Time          `gorm:"not null;index;column:occurred_at"`
	CreatedAt  time.Time          `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for LifecycleEvent
func (LifecycleEvent) TableName() string {
	return "lifecycle_events"
}

// BeforeCreate assigns the event ID and timestamp when absent.
func (e *LifecycleEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return nil
}

// LeadNumberSequence tracks the last issued lead number per tenant.
// Incremented under a row lock so numbers are unique and never reused.
type LeadNumberSequence struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     TenantID  `gorm:"type:varchar(50);not null;uniqueIndex;column:tenant_id"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for LeadNumberSequence
func (LeadNumberSequence) TableName() string {
	return "lead_number_sequences"
}

// BeforeCreate assigns the sequence row ID when absent.
func (s *LeadNumberSequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeLeadAssigned  NotificationType = "lead_assigned"
	NotificationTypeLeadConverted NotificationType = "lead_converted"
)

// Notification represents an in-app notification for a user
type Notification struct {
	BaseModel
	TenantID TenantID   `gorm:"type:varchar(50);not null;index;column:tenant_id"`
	UserID   string     `gorm:"type:varchar(100);not null;index;column:user_id"`
	Type     string     `gorm:"type:varchar(50);not null"`
	Title    string     `gorm:"type:varchar(200);not null"`
	Message  string     `gorm:"type:varchar(500);not null"`
	Read     bool       `gorm:"column:read;not null;default:false;index"`
	ReadAt   *time.Time `gorm:"column:read_at"`
	LeadID   *uuid.UUID `gorm:"type:uuid;column:lead_id"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}

// UserRoleType represents a role carried in the caller's token claims
type UserRoleType string

const (
	RoleAdmin   UserRoleType = "admin"
	RoleManager UserRoleType = "manager"
	RoleRep     UserRoleType = "rep"
	RoleService UserRoleType = "api_service"
)
