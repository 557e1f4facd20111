package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// SchoolStore defines the interface for school data persistence.
// The comparison core never queries the store itself; request handling glue
// fetches a flat city snapshot here and hands it to the domain packages.
type SchoolStore interface {
	// Create saves a new school to the store.
	// Returns ErrInvalidEntity if the admin ID doesn't exist.
	// Returns validation errors from the domain School if data is invalid.
	Create(ctx context.Context, school *domain.School) error

	// GetByID retrieves a school by its unique ID.
	// Returns ErrSchoolNotFound if the school does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.School, error)

	// GetByAdminID retrieves the school owned by the given admin.
	// Returns ErrSchoolNotFound if the admin owns no school.
	GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.School, error)

	// FindPublishedByCity returns the current snapshot of published schools
	// for one city, in no guaranteed order. Returns an empty slice when the
	// city has no published schools.
	FindPublishedByCity(ctx context.Context, city string) ([]domain.School, error)

	// ListCities returns the distinct cities that have at least one
	// published school.
	ListCities(ctx context.Context) ([]string, error)

	// Update saves changes to an existing school record.
	// Returns ErrSchoolNotFound if the school does not exist.
	// Returns validation errors from the domain School if data is invalid.
	Update(ctx context.Context, school *domain.School) error

	// SetPremium flips the premium flag on a school. Called by the payment
	// webhook glue; the flag only ever affects ranking tie-breaks.
	// Returns ErrSchoolNotFound if the school does not exist.
	SetPremium(ctx context.Context, id uuid.UUID, premium bool) error

	// WithTx returns a new SchoolStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) SchoolStore
}
