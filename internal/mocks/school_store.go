// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock exposes per-method function fields; when a
// field is nil the mock falls back to simple default values.
package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// MockSchoolStore implements store.SchoolStore for testing
type MockSchoolStore struct {
	CreateFn              func(ctx context.Context, school *domain.School) error
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.School, error)
	GetByAdminIDFn        func(ctx context.Context, adminID uuid.UUID) (*domain.School, error)
	FindPublishedByCityFn func(ctx context.Context, city string) ([]domain.School, error)
	ListCitiesFn          func(ctx context.Context) ([]string, error)
	UpdateFn              func(ctx context.Context, school *domain.School) error
	SetPremiumFn          func(ctx context.Context, id uuid.UUID, premium bool) error

	// Default values used when functions aren't explicitly defined
	School  *domain.School
	Schools []domain.School
	Cities  []string
	Err     error

	// Call tracking for verification
	SetPremiumCalledWith struct {
		ID      uuid.UUID
		Premium bool
	}
	SetPremiumCallCount int
}

var _ store.SchoolStore = (*MockSchoolStore)(nil)

// Create implements the store.SchoolStore interface
func (m *MockSchoolStore) Create(ctx context.Context, school *domain.School) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, school)
	}
	return m.Err
}

// GetByID implements the store.SchoolStore interface
func (m *MockSchoolStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.School, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.School, m.Err
}

// GetByAdminID implements the store.SchoolStore interface
func (m *MockSchoolStore) GetByAdminID(ctx context.Context, adminID uuid.UUID) (*domain.School, error) {
	if m.GetByAdminIDFn != nil {
		return m.GetByAdminIDFn(ctx, adminID)
	}
	return m.School, m.Err
}

// FindPublishedByCity implements the store.SchoolStore interface
func (m *MockSchoolStore) FindPublishedByCity(ctx context.Context, city string) ([]domain.School, error) {
	if m.FindPublishedByCityFn != nil {
		return m.FindPublishedByCityFn(ctx, city)
	}
	return m.Schools, m.Err
}

// ListCities implements the store.SchoolStore interface
func (m *MockSchoolStore) ListCities(ctx context.Context) ([]string, error) {
	if m.ListCitiesFn != nil {
		return m.ListCitiesFn(ctx)
	}
	return m.Cities, m.Err
}

// Update implements the store.SchoolStore interface
func (m *MockSchoolStore) Update(ctx context.Context, school *domain.School) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, school)
	}
	return m.Err
}

// SetPremium implements the store.SchoolStore interface
func (m *MockSchoolStore) SetPremium(ctx context.Context, id uuid.UUID, premium bool) error {
	m.SetPremiumCalledWith.ID = id
	m.SetPremiumCalledWith.Premium = premium
	m.SetPremiumCallCount++

	if m.SetPremiumFn != nil {
		return m.SetPremiumFn(ctx, id, premium)
	}
	return m.Err
}

// WithTx implements the store.SchoolStore interface.
// The mock has no transaction state, so it returns itself.
func (m *MockSchoolStore) WithTx(tx *sql.Tx) store.SchoolStore {
	return m
}
