package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// MockAdminStore implements store.AdminStore for testing
type MockAdminStore struct {
	CreateFn     func(ctx context.Context, admin *domain.Admin) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Admin, error)

	// Default values used when functions aren't explicitly defined
	Admin *domain.Admin
	Err   error
}

var _ store.AdminStore = (*MockAdminStore)(nil)

// Create implements the store.AdminStore interface
func (m *MockAdminStore) Create(ctx context.Context, admin *domain.Admin) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, admin)
	}
	return m.Err
}

// GetByID implements the store.AdminStore interface
func (m *MockAdminStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Admin, m.Err
}

// GetByEmail implements the store.AdminStore interface
func (m *MockAdminStore) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return m.Admin, m.Err
}

// WithTx implements the store.AdminStore interface.
// The mock has no transaction state, so it returns itself.
func (m *MockAdminStore) WithTx(tx *sql.Tx) store.AdminStore {
	return m
}
