package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// RegistrationInput carries everything needed to open a school admin account.
// Registration always creates the admin and their school together.
type RegistrationInput struct {
	Email    string
	Password string
	FullName string

	SchoolName string
	Address    string
	City       string
	PostalCode string
}

// AccountService provides admin account operations: registration and login.
type AccountService interface {
	// Register creates a new admin account together with its school record.
	// Both are created in a single transaction; a failure of either leaves
	// no partial account behind.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, input RegistrationInput) (*domain.Admin, *domain.School, error)

	// Authenticate verifies an email/password pair and returns the admin on
	// success. Returns ErrInvalidCredentials for an unknown email or a
	// wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.Admin, error)

	// GetAdmin retrieves an admin by ID.
	// Returns store.ErrAdminNotFound if the admin does not exist.
	GetAdmin(ctx context.Context, adminID uuid.UUID) (*domain.Admin, error)
}

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	adminStore       store.AdminStore
	schoolStore      store.SchoolStore
	passwordVerifier auth.PasswordVerifier
	db               *sql.DB
	logger           *slog.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	adminStore store.AdminStore,
	schoolStore store.SchoolStore,
	passwordVerifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	return &AccountServiceImpl{
		adminStore:       adminStore,
		schoolStore:      schoolStore,
		passwordVerifier: passwordVerifier,
		db:               db,
		logger:           logger.With("component", "account_service"),
	}
}

// Register creates the admin account and its school in one transaction.
func (s *AccountServiceImpl) Register(
	ctx context.Context,
	input RegistrationInput,
) (*domain.Admin, *domain.School, error) {
	admin, err := domain.NewAdmin(input.Email, input.FullName, input.Password)
	if err != nil {
		s.logger.Debug("admin validation failed during registration",
			"error", err)
		return nil, nil, fmt.Errorf("failed to create admin: %w", err)
	}

	school, err := domain.NewSchool(admin.ID, input.SchoolName, input.Address, input.City, input.PostalCode)
	if err != nil {
		s.logger.Debug("school validation failed during registration",
			"error", err)
		return nil, nil, fmt.Errorf("failed to create school: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.adminStore.WithTx(tx).Create(ctx, admin); err != nil {
			return err
		}
		return s.schoolStore.WithTx(tx).Create(ctx, school)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
		} else {
			s.logger.Error("failed to save registration",
				"error", err)
		}
		return nil, nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info("admin registered with school",
		"admin_id", admin.ID,
		"school_id", school.ID,
		"city", school.City)

	return admin, school, nil
}

// Authenticate verifies the email/password pair.
// Unknown email and wrong password collapse into the same error so login
// responses don't leak which emails are registered.
func (s *AccountServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.Admin, error) {
	admin, err := s.adminStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve admin for login",
			"error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.passwordVerifier.Compare(admin.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"admin_id", admin.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Debug("admin authenticated",
		"admin_id", admin.ID)

	return admin, nil
}

// GetAdmin retrieves an admin by their ID.
func (s *AccountServiceImpl) GetAdmin(ctx context.Context, adminID uuid.UUID) (*domain.Admin, error) {
	admin, err := s.adminStore.GetByID(ctx, adminID)
	if err != nil {
		if !errors.Is(err, store.ErrAdminNotFound) {
			s.logger.Error("failed to retrieve admin",
				"error", err,
				"admin_id", adminID)
		}
		return nil, fmt.Errorf("failed to retrieve admin: %w", err)
	}

	return admin, nil
}
