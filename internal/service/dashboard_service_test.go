package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/mocks"
	. "github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

func ownedSchool(adminID uuid.UUID) *domain.School {
	return &domain.School{
		ID:                 uuid.New(),
		AdminID:            adminID,
		Name:               "Fahrschule Eigene",
		City:               "München",
		BaseFee:            euros(200),
		DrivingLessonPrice: euros(55),
		TheoryExamFee:      euros(60),
		PracticalExamFee:   euros(120),
		IsPublished:        true,
	}
}

func TestDashboardService_GetSchool(t *testing.T) {
	t.Parallel()

	t.Run("maps missing school to ErrNoSchool", func(t *testing.T) {
		t.Parallel()
		schoolStore := &mocks.MockSchoolStore{Err: store.ErrSchoolNotFound}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, nil, testLogger())

		_, err := svc.GetSchool(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNoSchool)
	})
}

func TestDashboardService_UpdatePrices(t *testing.T) {
	t.Parallel()

	t.Run("updates all four prices in a transaction", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		adminID := uuid.New()
		school := ownedSchool(adminID)
		var savedSchool *domain.School
		schoolStore := &mocks.MockSchoolStore{
			School: school,
			UpdateFn: func(ctx context.Context, s *domain.School) error {
				savedSchool = s
				return nil
			},
		}

		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, db, testLogger())

		updated, err := svc.UpdatePrices(context.Background(), adminID, 250, 60, 70, 130)
		require.NoError(t, err)
		require.NotNil(t, savedSchool)

		assert.Equal(t, int64(250), *updated.BaseFee)
		assert.Equal(t, int64(60), *updated.DrivingLessonPrice)
		assert.Equal(t, int64(70), *updated.TheoryExamFee)
		assert.Equal(t, int64(130), *updated.PracticalExamFee)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects negative prices and rolls back", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		adminID := uuid.New()
		schoolStore := &mocks.MockSchoolStore{School: ownedSchool(adminID)}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, db, testLogger())

		_, err = svc.UpdatePrices(context.Background(), adminID, 250, -1, 70, 130)
		assert.ErrorIs(t, err, domain.ErrNegativePrice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDashboardService_UpdateSettings(t *testing.T) {
	t.Parallel()

	t.Run("replaces listing details", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		adminID := uuid.New()
		schoolStore := &mocks.MockSchoolStore{School: ownedSchool(adminID)}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, db, testLogger())

		updated, err := svc.UpdateSettings(context.Background(), adminID, SettingsInput{
			Name:        "Fahrschule Umbenannt",
			Address:     "Neue Straße 5",
			City:        "München",
			PostalCode:  "80331",
			PhoneNumber: "+49 89 123456",
			Email:       "kontakt@umbenannt.de",
			Website:     "https://umbenannt.de",
			IsPublished: false,
		})
		require.NoError(t, err)

		assert.Equal(t, "Fahrschule Umbenannt", updated.Name)
		assert.False(t, updated.IsPublished)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		adminID := uuid.New()
		schoolStore := &mocks.MockSchoolStore{School: ownedSchool(adminID)}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, db, testLogger())

		_, err = svc.UpdateSettings(context.Background(), adminID, SettingsInput{
			Name: "   ",
			City: "München",
		})
		assert.ErrorIs(t, err, domain.ErrEmptySchoolName)
	})
}

func TestDashboardService_GetPriceBreakdown(t *testing.T) {
	t.Parallel()

	t.Run("computes one total per level", func(t *testing.T) {
		t.Parallel()
		adminID := uuid.New()
		schoolStore := &mocks.MockSchoolStore{School: ownedSchool(adminID)}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, nil, testLogger())

		breakdown, err := svc.GetPriceBreakdown(context.Background(), adminID)
		require.NoError(t, err)
		require.Len(t, breakdown, len(pricing.Levels()))

		// beginner: 200 + 30*55 + 2*60 + 2*120 = 2210
		assert.Equal(t, pricing.LevelBeginner, breakdown[0].Level)
		assert.Equal(t, int64(2210), breakdown[0].Total)

		// veryExperienced: 200 + 6*55 + 60 + 120 = 710
		last := breakdown[len(breakdown)-1]
		assert.Equal(t, pricing.LevelVeryExperienced, last.Level)
		assert.Equal(t, int64(710), last.Total)
	})

	t.Run("incomplete prices surface as error", func(t *testing.T) {
		t.Parallel()
		adminID := uuid.New()
		school := ownedSchool(adminID)
		school.TheoryExamFee = nil
		schoolStore := &mocks.MockSchoolStore{School: school}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, nil, testLogger())

		_, err := svc.GetPriceBreakdown(context.Background(), adminID)
		assert.ErrorIs(t, err, pricing.ErrInvalidPriceProfile)
	})
}

func TestDashboardService_GetStatistics(t *testing.T) {
	t.Parallel()

	t.Run("combines market and engagement numbers", func(t *testing.T) {
		t.Parallel()
		adminID := uuid.New()
		school := ownedSchool(adminID)
		competitor := publishedSchool("Fahrschule Konkurrenz", 45, false)
		competitor.City = school.City

		var summarizedSince time.Time
		schoolStore := &mocks.MockSchoolStore{
			School:  school,
			Schools: []domain.School{*school, competitor},
		}
		analyticsStore := &mocks.MockAnalyticsStore{
			SummarizeSinceFn: func(ctx context.Context, schoolID uuid.UUID, since time.Time) (*store.EngagementSummary, error) {
				summarizedSince = since
				return &store.EngagementSummary{Views: 12, WebsiteClicks: 3, ContactClicks: 2}, nil
			},
		}

		svc := NewDashboardService(schoolStore, analyticsStore, nil, testLogger())

		stats, err := svc.GetStatistics(context.Background(), adminID)
		require.NoError(t, err)

		assert.Equal(t, 2, stats.Market.SchoolCount)
		// Competitor's 45 beats our 55 per lesson.
		assert.Equal(t, 2, stats.Market.CityRank)
		assert.Equal(t, 12, stats.Engagement.Views)

		// The reporting window reaches 30 days back.
		expectedSince := time.Now().Add(-30 * 24 * time.Hour)
		assert.WithinDuration(t, expectedSince, summarizedSince, time.Minute)
	})

	t.Run("empty city surfaces no-market-data", func(t *testing.T) {
		t.Parallel()
		adminID := uuid.New()
		schoolStore := &mocks.MockSchoolStore{
			School:  ownedSchool(adminID),
			Schools: []domain.School{},
		}
		svc := NewDashboardService(schoolStore, &mocks.MockAnalyticsStore{}, nil, testLogger())

		_, err := svc.GetStatistics(context.Background(), adminID)
		assert.ErrorIs(t, err, market.ErrNoMarketData)
	})
}
