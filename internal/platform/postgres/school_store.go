package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/logger"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// schoolColumns is the column list shared by all school SELECTs, in scan order.
const schoolColumns = `id, admin_id, name, address, city, postal_code,
	phone_number, email, website,
	base_fee, driving_lesson_price, theory_exam_fee, practical_exam_fee,
	is_premium, is_published, created_at, updated_at`

// PostgresSchoolStore implements the store.SchoolStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSchoolStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSchoolStore creates a new PostgreSQL implementation of the
// SchoolStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSchoolStore(db store.DBTX, logger *slog.Logger) *PostgresSchoolStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSchoolStore{
		db:     db,
		logger: logger.With(slog.String("component", "school_store")),
	}
}

// Ensure PostgresSchoolStore implements store.SchoolStore interface
var _ store.SchoolStore = (*PostgresSchoolStore)(nil)

// WithTx implements store.SchoolStore.WithTx
func (s *PostgresSchoolStore) WithTx(tx *sql.Tx) store.SchoolStore {
	return &PostgresSchoolStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.SchoolStore.Create
// It saves a new school to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the admin ID doesn't exist (foreign key
// violation).
func (s *PostgresSchoolStore) Create(ctx context.Context, school *domain.School) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := school.Validate(); err != nil {
		log.Warn("school validation failed during create",
			slog.String("error", err.Error()),
			slog.String("school_id", school.ID.String()))
		return err
	}

	query := `
		INSERT INTO schools (` + schoolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		school.ID,
		school.AdminID,
		school.Name,
		school.Address,
		school.City,
		school.PostalCode,
		school.PhoneNumber,
		school.Email,
		school.Website,
		school.BaseFee,
		school.DrivingLessonPrice,
		school.TheoryExamFee,
		school.PracticalExamFee,
		school.IsPremium,
		school.IsPublished,
		school.CreatedAt,
		school.UpdatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during school creation",
				slog.String("error", err.Error()),
				slog.String("school_id", school.ID.String()),
				slog.String("admin_id", school.AdminID.String()))
			return fmt.Errorf("%w: admin with ID %s not found",
				store.ErrInvalidEntity, school.AdminID)
		}

		log.Error("failed to create school",
			slog.String("error", err.Error()),
			slog.String("school_id", school.ID.String()))
		return err
	}

	log.Info("school created successfully",
		slog.String("school_id", school.ID.String()),
		slog.String("city", school.City))
	return nil
}

// GetByID implements store.SchoolStore.GetByID
// Returns store.ErrSchoolNotFound if the school does not exist.
func (s *PostgresSchoolStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.School, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + schoolColumns + ` FROM schools WHERE id = $1`

	school, err := scanSchool(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("school not found", slog.String("school_id", id.String()))
			return nil, store.ErrSchoolNotFound
		}
		log.Error("failed to get school by ID",
			slog.String("error", err.Error()),
			slog.String("school_id", id.String()))
		return nil, err
	}

	return school, nil
}

// GetByAdminID implements store.SchoolStore.GetByAdminID
// Returns store.ErrSchoolNotFound if the admin owns no school.
func (s *PostgresSchoolStore) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.School, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + schoolColumns + ` FROM schools WHERE admin_id = $1`

	school, err := scanSchool(s.db.QueryRowContext(ctx, query, adminID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no school for admin", slog.String("admin_id", adminID.String()))
			return nil, store.ErrSchoolNotFound
		}
		log.Error("failed to get school by admin ID",
			slog.String("error", err.Error()),
			slog.String("admin_id", adminID.String()))
		return nil, err
	}

	return school, nil
}

// FindPublishedByCity implements store.SchoolStore.FindPublishedByCity
// It returns the city snapshot in insertion order; the caller is responsible
// for ranking. Returns an empty slice if the city has no published schools.
func (s *PostgresSchoolStore) FindPublishedByCity(ctx context.Context, city string) ([]domain.School, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + schoolColumns + `
		FROM schools
		WHERE city = $1 AND is_published = TRUE
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, city)
	if err != nil {
		log.Error("failed to query schools by city",
			slog.String("error", err.Error()),
			slog.String("city", city))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	schools := []domain.School{}
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			log.Error("failed to scan school row",
				slog.String("error", err.Error()))
			return nil, err
		}
		schools = append(schools, *school)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("found schools by city",
		slog.String("city", city),
		slog.Int("count", len(schools)))
	return schools, nil
}

// ListCities implements store.SchoolStore.ListCities
func (s *PostgresSchoolStore) ListCities(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT city
		FROM schools
		WHERE is_published = TRUE
		ORDER BY city
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query cities", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			log.Error("failed to scan city row", slog.String("error", err.Error()))
			return nil, err
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return cities, nil
}

// Update implements store.SchoolStore.Update
// Returns store.ErrSchoolNotFound if the school does not exist.
func (s *PostgresSchoolStore) Update(ctx context.Context, school *domain.School) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := school.Validate(); err != nil {
		log.Warn("school validation failed during update",
			slog.String("error", err.Error()),
			slog.String("school_id", school.ID.String()))
		return err
	}

	query := `
		UPDATE schools
		SET name = $1, address = $2, city = $3, postal_code = $4,
			phone_number = $5, email = $6, website = $7,
			base_fee = $8, driving_lesson_price = $9,
			theory_exam_fee = $10, practical_exam_fee = $11,
			is_published = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		school.Name,
		school.Address,
		school.City,
		school.PostalCode,
		school.PhoneNumber,
		school.Email,
		school.Website,
		school.BaseFee,
		school.DrivingLessonPrice,
		school.TheoryExamFee,
		school.PracticalExamFee,
		school.IsPublished,
		school.UpdatedAt,
		school.ID,
	)

	if err != nil {
		log.Error("failed to update school",
			slog.String("error", err.Error()),
			slog.String("school_id", school.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("school_id", school.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("school not found for update",
			slog.String("school_id", school.ID.String()))
		return store.ErrSchoolNotFound
	}

	log.Info("school updated successfully",
		slog.String("school_id", school.ID.String()))
	return nil
}

// SetPremium implements store.SchoolStore.SetPremium
// Returns store.ErrSchoolNotFound if the school does not exist.
func (s *PostgresSchoolStore) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE schools
		SET is_premium = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, premium, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to set premium flag",
			slog.String("error", err.Error()),
			slog.String("school_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("school_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("school not found for premium update",
			slog.String("school_id", id.String()))
		return store.ErrSchoolNotFound
	}

	log.Info("school premium flag updated",
		slog.String("school_id", id.String()),
		slog.Bool("premium", premium))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSchool reads one school row in schoolColumns order. Nullable monetary
// columns scan into sql.NullInt64 and map to nil pointers when absent.
func scanSchool(row rowScanner) (*domain.School, error) {
	var school domain.School
	var phoneNumber, email, website sql.NullString
	var baseFee, lessonPrice, theoryFee, practicalFee sql.NullInt64

	err := row.Scan(
		&school.ID,
		&school.AdminID,
		&school.Name,
		&school.Address,
		&school.City,
		&school.PostalCode,
		&phoneNumber,
		&email,
		&website,
		&baseFee,
		&lessonPrice,
		&theoryFee,
		&practicalFee,
		&school.IsPremium,
		&school.IsPublished,
		&school.CreatedAt,
		&school.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	school.PhoneNumber = phoneNumber.String
	school.Email = email.String
	school.Website = website.String
	school.BaseFee = nullableInt64(baseFee)
	school.DrivingLessonPrice = nullableInt64(lessonPrice)
	school.TheoryExamFee = nullableInt64(theoryFee)
	school.PracticalExamFee = nullableInt64(practicalFee)

	return &school, nil
}

// nullableInt64 converts a sql.NullInt64 into the domain's pointer form.
func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}
