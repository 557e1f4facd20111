package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// MockAnalyticsStore implements store.AnalyticsStore for testing
type MockAnalyticsStore struct {
	RecordEventFn    func(ctx context.Context, event *domain.EngagementEvent) error
	SummarizeSinceFn func(ctx context.Context, schoolID uuid.UUID, since time.Time) (*store.EngagementSummary, error)

	// Default values used when functions aren't explicitly defined
	Summary *store.EngagementSummary
	Err     error

	// Call tracking for verification
	RecordedEvents []*domain.EngagementEvent
}

var _ store.AnalyticsStore = (*MockAnalyticsStore)(nil)

// RecordEvent implements the store.AnalyticsStore interface
func (m *MockAnalyticsStore) RecordEvent(ctx context.Context, event *domain.EngagementEvent) error {
	m.RecordedEvents = append(m.RecordedEvents, event)

	if m.RecordEventFn != nil {
		return m.RecordEventFn(ctx, event)
	}
	return m.Err
}

// SummarizeSince implements the store.AnalyticsStore interface
func (m *MockAnalyticsStore) SummarizeSince(
	ctx context.Context,
	schoolID uuid.UUID,
	since time.Time,
) (*store.EngagementSummary, error) {
	if m.SummarizeSinceFn != nil {
		return m.SummarizeSinceFn(ctx, schoolID, since)
	}
	return m.Summary, m.Err
}
