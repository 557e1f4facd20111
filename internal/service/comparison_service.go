package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// ComparisonService provides the public, unauthenticated comparison surface:
// city discovery, ranked listings, school detail pages, and engagement
// tracking.
type ComparisonService interface {
	// ListCities returns the cities that have at least one published school.
	ListCities(ctx context.Context) ([]string, error)

	// CompareCity returns the published schools of one city ranked for
	// display at the given experience level: ascending by estimated total
	// price, premium schools first.
	// Returns pricing.ErrUnknownExperienceLevel for an invalid level.
	CompareCity(ctx context.Context, city string, level pricing.ExperienceLevel) ([]market.RankedSchool, error)

	// GetSchool retrieves a single published school's listing.
	// Returns store.ErrSchoolNotFound if the school does not exist or is
	// not published.
	GetSchool(ctx context.Context, schoolID uuid.UUID) (*domain.School, error)

	// TrackEngagement records an anonymous interaction with a school's
	// listing. Returns store.ErrInvalidEntity for an unknown school and
	// domain.ErrInvalidEventType for an unknown event type.
	TrackEngagement(ctx context.Context, schoolID uuid.UUID, eventType domain.EngagementEventType) error
}

// ComparisonServiceImpl implements the ComparisonService interface
type ComparisonServiceImpl struct {
	schoolStore    store.SchoolStore
	analyticsStore store.AnalyticsStore
	logger         *slog.Logger
}

// NewComparisonService creates a new ComparisonService
func NewComparisonService(
	schoolStore store.SchoolStore,
	analyticsStore store.AnalyticsStore,
	logger *slog.Logger,
) ComparisonService {
	return &ComparisonServiceImpl{
		schoolStore:    schoolStore,
		analyticsStore: analyticsStore,
		logger:         logger.With("component", "comparison_service"),
	}
}

// ListCities returns the distinct cities with published schools.
func (s *ComparisonServiceImpl) ListCities(ctx context.Context) ([]string, error) {
	cities, err := s.schoolStore.ListCities(ctx)
	if err != nil {
		s.logger.Error("failed to list cities", "error", err)
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

// CompareCity fetches the city snapshot and ranks it for display.
// An empty city yields an empty (non-nil) result, not an error.
func (s *ComparisonServiceImpl) CompareCity(
	ctx context.Context,
	city string,
	level pricing.ExperienceLevel,
) ([]market.RankedSchool, error) {
	schools, err := s.schoolStore.FindPublishedByCity(ctx, city)
	if err != nil {
		s.logger.Error("failed to fetch city snapshot",
			"error", err,
			"city", city)
		return nil, fmt.Errorf("failed to fetch schools for city: %w", err)
	}

	ranked, err := market.RankForDisplay(schools, level)
	if err != nil {
		s.logger.Debug("ranking failed",
			"error", err,
			"city", city,
			"level", string(level))
		return nil, err
	}

	s.logger.Debug("city comparison computed",
		"city", city,
		"level", string(level),
		"school_count", len(ranked))

	return ranked, nil
}

// GetSchool returns a published school's listing. Unpublished schools are
// indistinguishable from missing ones on the public surface.
func (s *ComparisonServiceImpl) GetSchool(ctx context.Context, schoolID uuid.UUID) (*domain.School, error) {
	school, err := s.schoolStore.GetByID(ctx, schoolID)
	if err != nil {
		if !errors.Is(err, store.ErrSchoolNotFound) {
			s.logger.Error("failed to retrieve school",
				"error", err,
				"school_id", schoolID)
		}
		return nil, fmt.Errorf("failed to retrieve school: %w", err)
	}

	if !school.IsPublished {
		s.logger.Debug("unpublished school requested on public surface",
			"school_id", schoolID)
		return nil, store.ErrSchoolNotFound
	}

	return school, nil
}

// TrackEngagement records a listing interaction.
func (s *ComparisonServiceImpl) TrackEngagement(
	ctx context.Context,
	schoolID uuid.UUID,
	eventType domain.EngagementEventType,
) error {
	event, err := domain.NewEngagementEvent(schoolID, eventType)
	if err != nil {
		s.logger.Debug("invalid engagement event",
			"error", err,
			"school_id", schoolID)
		return err
	}

	if err := s.analyticsStore.RecordEvent(ctx, event); err != nil {
		if errors.Is(err, store.ErrInvalidEntity) {
			s.logger.Debug("engagement event for unknown school",
				"school_id", schoolID)
		} else {
			s.logger.Error("failed to record engagement event",
				"error", err,
				"school_id", schoolID)
		}
		return err
	}

	return nil
}
