package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/logger"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// PostgresAnalyticsStore implements the store.AnalyticsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAnalyticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnalyticsStore creates a new PostgreSQL implementation of the
// AnalyticsStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresAnalyticsStore(db store.DBTX, logger *slog.Logger) *PostgresAnalyticsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnalyticsStore{
		db:     db,
		logger: logger.With(slog.String("component", "analytics_store")),
	}
}

// Ensure PostgresAnalyticsStore implements store.AnalyticsStore interface
var _ store.AnalyticsStore = (*PostgresAnalyticsStore)(nil)

// RecordEvent implements store.AnalyticsStore.RecordEvent
// Returns store.ErrInvalidEntity if the school ID doesn't exist (foreign key
// violation).
func (s *PostgresAnalyticsStore) RecordEvent(ctx context.Context, event *domain.EngagementEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("event validation failed",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return err
	}

	query := `
		INSERT INTO engagement_events (id, school_id, event_type, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.SchoolID,
		event.Type,
		event.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during event recording",
				slog.String("school_id", event.SchoolID.String()))
			return fmt.Errorf("%w: school with ID %s not found",
				store.ErrInvalidEntity, event.SchoolID)
		}

		log.Error("failed to record engagement event",
			slog.String("error", err.Error()),
			slog.String("school_id", event.SchoolID.String()))
		return err
	}

	log.Debug("engagement event recorded",
		slog.String("school_id", event.SchoolID.String()),
		slog.String("event_type", string(event.Type)))
	return nil
}

// SummarizeSince implements store.AnalyticsStore.SummarizeSince
// Phone and email clicks are folded into the contact click count.
func (s *PostgresAnalyticsStore) SummarizeSince(
	ctx context.Context,
	schoolID uuid.UUID,
	since time.Time,
) (*store.EngagementSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'view'),
			COUNT(*) FILTER (WHERE event_type = 'website_click'),
			COUNT(*) FILTER (WHERE event_type IN ('phone_click', 'email_click'))
		FROM engagement_events
		WHERE school_id = $1 AND created_at >= $2
	`

	var summary store.EngagementSummary
	err := s.db.QueryRowContext(ctx, query, schoolID, since).Scan(
		&summary.Views,
		&summary.WebsiteClicks,
		&summary.ContactClicks,
	)
	if err != nil {
		log.Error("failed to summarize engagement events",
			slog.String("error", err.Error()),
			slog.String("school_id", schoolID.String()))
		return nil, err
	}

	return &summary, nil
}
