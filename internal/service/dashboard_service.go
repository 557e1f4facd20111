package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// engagementWindow is the reporting window for the dashboard's engagement
// summary.
const engagementWindow = 30 * 24 * time.Hour

// SettingsInput carries the mutable non-price listing fields.
type SettingsInput struct {
	Name        string
	Address     string
	City        string
	PostalCode  string
	PhoneNumber string
	Email       string
	Website     string
	IsPublished bool
}

// LevelPrice is one row of a school's own price breakdown: the estimated
// total at one experience level.
type LevelPrice struct {
	Level pricing.ExperienceLevel `json:"level"`
	Total int64                   `json:"total"`
}

// DashboardStatistics bundles everything the school dashboard shows: the
// city market statistics and the recent engagement summary.
type DashboardStatistics struct {
	Market     *market.Statistics       `json:"market"`
	Engagement *store.EngagementSummary `json:"engagement"`
}

// DashboardService provides the authenticated school-operator surface:
// profile management, price updates, and market/engagement statistics.
type DashboardService interface {
	// GetSchool retrieves the school owned by the given admin.
	// Returns ErrNoSchool if the admin owns no school.
	GetSchool(ctx context.Context, adminID uuid.UUID) (*domain.School, error)

	// UpdatePrices replaces all four monetary fields of the admin's school.
	// Returns domain.ErrNegativePrice if any value is negative.
	UpdatePrices(ctx context.Context, adminID uuid.UUID, baseFee, lessonPrice, theoryFee, practicalFee int64) (*domain.School, error)

	// UpdateSettings replaces the school's listing details.
	UpdateSettings(ctx context.Context, adminID uuid.UUID, input SettingsInput) (*domain.School, error)

	// GetPriceBreakdown computes the school's estimated total at every
	// experience level under the strict pricing contract.
	// Returns pricing.ErrInvalidPriceProfile if any monetary field is
	// missing or negative; incomplete price data must surface here, not be
	// silently defaulted.
	GetPriceBreakdown(ctx context.Context, adminID uuid.UUID) ([]LevelPrice, error)

	// GetStatistics computes the city market statistics relative to the
	// admin's school plus the 30-day engagement summary.
	// Returns market.ErrNoMarketData if the city has no published schools.
	GetStatistics(ctx context.Context, adminID uuid.UUID) (*DashboardStatistics, error)
}

// DashboardServiceImpl implements the DashboardService interface
type DashboardServiceImpl struct {
	schoolStore    store.SchoolStore
	analyticsStore store.AnalyticsStore
	db             *sql.DB
	logger         *slog.Logger
	timeFunc       func() time.Time // Injectable for testing
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	schoolStore store.SchoolStore,
	analyticsStore store.AnalyticsStore,
	db *sql.DB,
	logger *slog.Logger,
) DashboardService {
	return &DashboardServiceImpl{
		schoolStore:    schoolStore,
		analyticsStore: analyticsStore,
		db:             db,
		logger:         logger.With("component", "dashboard_service"),
		timeFunc:       time.Now,
	}
}

// GetSchool retrieves the admin's school.
func (s *DashboardServiceImpl) GetSchool(ctx context.Context, adminID uuid.UUID) (*domain.School, error) {
	school, err := s.schoolStore.GetByAdminID(ctx, adminID)
	if err != nil {
		if errors.Is(err, store.ErrSchoolNotFound) {
			s.logger.Warn("admin owns no school",
				"admin_id", adminID)
			return nil, ErrNoSchool
		}
		s.logger.Error("failed to retrieve school for admin",
			"error", err,
			"admin_id", adminID)
		return nil, fmt.Errorf("failed to retrieve school: %w", err)
	}
	return school, nil
}

// UpdatePrices replaces the school's monetary fields in a transaction,
// following the pattern of loading the full record, mutating it, and saving
// it back.
func (s *DashboardServiceImpl) UpdatePrices(
	ctx context.Context,
	adminID uuid.UUID,
	baseFee, lessonPrice, theoryFee, practicalFee int64,
) (*domain.School, error) {
	var updated *domain.School

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.schoolStore.WithTx(tx)

		school, err := txStore.GetByAdminID(ctx, adminID)
		if err != nil {
			if errors.Is(err, store.ErrSchoolNotFound) {
				return ErrNoSchool
			}
			return fmt.Errorf("failed to retrieve school for price update: %w", err)
		}

		if err := school.SetPrices(baseFee, lessonPrice, theoryFee, practicalFee); err != nil {
			return err
		}

		if err := txStore.Update(ctx, school); err != nil {
			return fmt.Errorf("failed to update school prices: %w", err)
		}

		updated = school
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrNegativePrice) || errors.Is(err, ErrNoSchool) {
			s.logger.Debug("price update rejected",
				"error", err,
				"admin_id", adminID)
		} else {
			s.logger.Error("failed to update prices",
				"error", err,
				"admin_id", adminID)
		}
		return nil, err
	}

	s.logger.Info("school prices updated",
		"admin_id", adminID,
		"school_id", updated.ID)

	return updated, nil
}

// UpdateSettings replaces the school's listing details in a transaction.
func (s *DashboardServiceImpl) UpdateSettings(
	ctx context.Context,
	adminID uuid.UUID,
	input SettingsInput,
) (*domain.School, error) {
	var updated *domain.School

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.schoolStore.WithTx(tx)

		school, err := txStore.GetByAdminID(ctx, adminID)
		if err != nil {
			if errors.Is(err, store.ErrSchoolNotFound) {
				return ErrNoSchool
			}
			return fmt.Errorf("failed to retrieve school for settings update: %w", err)
		}

		school.Name = input.Name
		school.Address = input.Address
		school.City = input.City
		school.PostalCode = input.PostalCode
		school.PhoneNumber = input.PhoneNumber
		school.Email = input.Email
		school.Website = input.Website
		school.IsPublished = input.IsPublished
		school.UpdatedAt = s.timeFunc().UTC()

		if err := school.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, school); err != nil {
			return fmt.Errorf("failed to update school settings: %w", err)
		}

		updated = school
		return nil
	})

	if err != nil {
		s.logger.Debug("settings update failed",
			"error", err,
			"admin_id", adminID)
		return nil, err
	}

	s.logger.Info("school settings updated",
		"admin_id", adminID,
		"school_id", updated.ID)

	return updated, nil
}

// GetPriceBreakdown computes the strict per-level totals for the admin's
// own school.
func (s *DashboardServiceImpl) GetPriceBreakdown(
	ctx context.Context,
	adminID uuid.UUID,
) ([]LevelPrice, error) {
	school, err := s.GetSchool(ctx, adminID)
	if err != nil {
		return nil, err
	}

	profile, err := pricing.ProfileForSchool(school)
	if err != nil {
		s.logger.Debug("price breakdown unavailable",
			"error", err,
			"school_id", school.ID)
		return nil, err
	}

	levels := pricing.Levels()
	breakdown := make([]LevelPrice, 0, len(levels))
	for _, level := range levels {
		reqs, err := pricing.RequirementsFor(level)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, LevelPrice{
			Level: level,
			Total: profile.Total(reqs),
		})
	}

	return breakdown, nil
}

// GetStatistics assembles the dashboard's market and engagement numbers
// from the current city snapshot and the 30-day event window.
func (s *DashboardServiceImpl) GetStatistics(
	ctx context.Context,
	adminID uuid.UUID,
) (*DashboardStatistics, error) {
	school, err := s.GetSchool(ctx, adminID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.schoolStore.FindPublishedByCity(ctx, school.City)
	if err != nil {
		s.logger.Error("failed to fetch city snapshot for statistics",
			"error", err,
			"city", school.City)
		return nil, fmt.Errorf("failed to fetch city snapshot: %w", err)
	}

	marketStats, err := market.ComputeStatistics(snapshot, school.ID)
	if err != nil {
		s.logger.Debug("market statistics unavailable",
			"error", err,
			"city", school.City)
		return nil, err
	}

	since := s.timeFunc().Add(-engagementWindow)
	engagement, err := s.analyticsStore.SummarizeSince(ctx, school.ID, since)
	if err != nil {
		s.logger.Error("failed to summarize engagement",
			"error", err,
			"school_id", school.ID)
		return nil, fmt.Errorf("failed to summarize engagement: %w", err)
	}

	return &DashboardStatistics{
		Market:     marketStats,
		Engagement: engagement,
	}, nil
}
