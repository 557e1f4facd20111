package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// EngagementSummary aggregates listing interactions for one school over a
// reporting window. Phone and email clicks are folded into ContactClicks.
type EngagementSummary struct {
	Views         int `json:"views"`
	WebsiteClicks int `json:"website_clicks"`
	ContactClicks int `json:"contact_clicks"`
}

// AnalyticsStore defines the interface for engagement event persistence.
type AnalyticsStore interface {
	// RecordEvent saves a single engagement event.
	// Returns ErrInvalidEntity if the school ID doesn't exist.
	RecordEvent(ctx context.Context, event *domain.EngagementEvent) error

	// SummarizeSince aggregates a school's events recorded at or after the
	// given time. Returns a zero-valued summary when there are no events;
	// absence of events is not an error.
	SummarizeSince(ctx context.Context, schoolID uuid.UUID, since time.Time) (*EngagementSummary, error)
}
