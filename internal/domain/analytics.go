package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// EngagementEventType classifies an interaction with a school's public listing.
type EngagementEventType string

// Possible engagement event types
const (
	EventTypeView         EngagementEventType = "view"
	EventTypeWebsiteClick EngagementEventType = "website_click"
	EventTypePhoneClick   EngagementEventType = "phone_click"
	EventTypeEmailClick   EngagementEventType = "email_click"
)

// Common validation errors for EngagementEvent
var (
	ErrEmptyEventID       = errors.New("event ID cannot be empty")
	ErrEmptyEventSchoolID = errors.New("event school ID cannot be empty")
	ErrInvalidEventType   = errors.New("invalid engagement event type")
)

// EngagementEvent records a single anonymous interaction with a school's
// listing. Events feed the 30-day summary on the school's dashboard.
type EngagementEvent struct {
	ID        uuid.UUID           `json:"id"`
	SchoolID  uuid.UUID           `json:"school_id"`
	Type      EngagementEventType `json:"type"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewEngagementEvent creates a new EngagementEvent for the given school.
// Returns an error if validation fails.
func NewEngagementEvent(schoolID uuid.UUID, eventType EngagementEventType) (*EngagementEvent, error) {
	event := &EngagementEvent{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		Type:      eventType,
		CreatedAt: time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the EngagementEvent has valid data.
func (e *EngagementEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEventID
	}

	if e.SchoolID == uuid.Nil {
		return ErrEmptyEventSchoolID
	}

	if !isValidEventType(e.Type) {
		return ErrInvalidEventType
	}

	return nil
}

// isValidEventType checks if the given type is a valid EngagementEventType.
func isValidEventType(t EngagementEventType) bool {
	switch t {
	case EventTypeView, EventTypeWebsiteClick, EventTypePhoneClick, EventTypeEmailClick:
		return true
	default:
		return false
	}
}
