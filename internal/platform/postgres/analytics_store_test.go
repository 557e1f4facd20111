package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

func newAnalyticsStoreWithMock(t *testing.T) (*PostgresAnalyticsStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresAnalyticsStore(db, testLogger), mock
}

func TestPostgresAnalyticsStore_RecordEvent(t *testing.T) {
	t.Run("inserts the event", func(t *testing.T) {
		analyticsStore, mock := newAnalyticsStoreWithMock(t)

		event, err := domain.NewEngagementEvent(uuid.New(), domain.EventTypeView)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO engagement_events`).
			WithArgs(event.ID, event.SchoolID, event.Type, event.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, analyticsStore.RecordEvent(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown school maps to ErrInvalidEntity", func(t *testing.T) {
		analyticsStore, mock := newAnalyticsStoreWithMock(t)

		event, err := domain.NewEngagementEvent(uuid.New(), domain.EventTypePhoneClick)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO engagement_events`).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolationCode})

		err = analyticsStore.RecordEvent(context.Background(), event)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("invalid event never reaches the database", func(t *testing.T) {
		analyticsStore, mock := newAnalyticsStoreWithMock(t)

		event := &domain.EngagementEvent{ID: uuid.New(), SchoolID: uuid.New(), Type: "hover"}
		err := analyticsStore.RecordEvent(context.Background(), event)
		assert.ErrorIs(t, err, domain.ErrInvalidEventType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresAnalyticsStore_SummarizeSince(t *testing.T) {
	t.Run("folds phone and email clicks into contact clicks", func(t *testing.T) {
		analyticsStore, mock := newAnalyticsStoreWithMock(t)
		schoolID := uuid.New()
		since := time.Now().UTC().Add(-30 * 24 * time.Hour)

		mock.ExpectQuery(`(?s)SELECT\s+COUNT\(\*\) FILTER`).
			WithArgs(schoolID, since).
			WillReturnRows(sqlmock.NewRows([]string{"views", "website_clicks", "contact_clicks"}).
				AddRow(42, 9, 7))

		summary, err := analyticsStore.SummarizeSince(context.Background(), schoolID, since)
		require.NoError(t, err)
		assert.Equal(t, 42, summary.Views)
		assert.Equal(t, 9, summary.WebsiteClicks)
		assert.Equal(t, 7, summary.ContactClicks)
	})

	t.Run("school without events yields zero counts", func(t *testing.T) {
		analyticsStore, mock := newAnalyticsStoreWithMock(t)
		schoolID := uuid.New()
		since := time.Now().UTC()

		mock.ExpectQuery(`(?s)SELECT\s+COUNT\(\*\) FILTER`).
			WithArgs(schoolID, since).
			WillReturnRows(sqlmock.NewRows([]string{"views", "website_clicks", "contact_clicks"}).
				AddRow(0, 0, 0))

		summary, err := analyticsStore.SummarizeSince(context.Background(), schoolID, since)
		require.NoError(t, err)
		assert.Zero(t, summary.Views)
		assert.Zero(t, summary.WebsiteClicks)
		assert.Zero(t, summary.ContactClicks)
	})
}
