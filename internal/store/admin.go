package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// AdminStore defines the interface for admin account persistence.
type AdminStore interface {
	// Create saves a new admin to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Admin if data is invalid.
	Create(ctx context.Context, admin *domain.Admin) error

	// GetByID retrieves an admin by their unique ID.
	// Returns ErrAdminNotFound if the admin does not exist.
	// The returned admin contains all fields except the plaintext password.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)

	// GetByEmail retrieves an admin by their email address.
	// Returns ErrAdminNotFound if the admin does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// WithTx returns a new AdminStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) AdminStore
}
