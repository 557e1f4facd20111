package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/logger"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// PostgresAdminStore implements the store.AdminStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAdminStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresAdminStore creates a new PostgreSQL implementation of the
// AdminStore interface. bcryptCost controls password hashing cost; values
// outside bcrypt's valid range fall back to bcrypt.DefaultCost.
// If logger is nil, a default logger will be used.
func NewPostgresAdminStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresAdminStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdminStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "admin_store")),
	}
}

// Ensure PostgresAdminStore implements store.AdminStore interface
var _ store.AdminStore = (*PostgresAdminStore)(nil)

// WithTx implements store.AdminStore.WithTx
func (s *PostgresAdminStore) WithTx(tx *sql.Tx) store.AdminStore {
	return &PostgresAdminStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}

// Create implements store.AdminStore.Create
// It validates the admin, hashes the plaintext password with bcrypt, and
// saves the record. The plaintext password is cleared after hashing.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresAdminStore) Create(ctx context.Context, admin *domain.Admin) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := admin.Validate(); err != nil {
		log.Warn("admin validation failed during create",
			slog.String("error", err.Error()),
			slog.String("admin_id", admin.ID.String()))
		return err
	}

	if admin.Password == "" {
		return domain.ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(admin.Password), s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password",
			slog.String("error", err.Error()),
			slog.String("admin_id", admin.ID.String()))
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin.HashedPassword = string(hashed)
	admin.Password = ""

	query := `
		INSERT INTO admins (id, email, full_name, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		admin.ID,
		admin.Email,
		admin.FullName,
		admin.HashedPassword,
		admin.CreatedAt,
		admin.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate email during admin creation",
				slog.String("admin_id", admin.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create admin",
			slog.String("error", err.Error()),
			slog.String("admin_id", admin.ID.String()))
		return err
	}

	log.Info("admin created successfully",
		slog.String("admin_id", admin.ID.String()))
	return nil
}

// GetByID implements store.AdminStore.GetByID
// Returns store.ErrAdminNotFound if the admin does not exist.
func (s *PostgresAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, full_name, hashed_password, created_at, updated_at
		FROM admins
		WHERE id = $1
	`

	var admin domain.Admin
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.FullName,
		&admin.HashedPassword,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("admin not found", slog.String("admin_id", id.String()))
			return nil, store.ErrAdminNotFound
		}
		log.Error("failed to get admin by ID",
			slog.String("error", err.Error()),
			slog.String("admin_id", id.String()))
		return nil, err
	}

	return &admin, nil
}

// GetByEmail implements store.AdminStore.GetByEmail
// Returns store.ErrAdminNotFound if the admin does not exist.
func (s *PostgresAdminStore) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, full_name, hashed_password, created_at, updated_at
		FROM admins
		WHERE email = $1
	`

	var admin domain.Admin
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.FullName,
		&admin.HashedPassword,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("admin not found by email")
			return nil, store.ErrAdminNotFound
		}
		log.Error("failed to get admin by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &admin, nil
}
