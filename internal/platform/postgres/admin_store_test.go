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
	"golang.org/x/crypto/bcrypt"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

func newAdminStoreWithMock(t *testing.T) (*PostgresAdminStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// MinCost keeps the hashing step fast in tests.
	return NewPostgresAdminStore(db, bcrypt.MinCost, testLogger), mock
}

func TestPostgresAdminStore_Create(t *testing.T) {
	t.Run("hashes the password and clears the plaintext", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)

		admin, err := domain.NewAdmin("inhaber@fahrschule-sonne.de", "Max Mustermann", "password1234567")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO admins`).
			WithArgs(admin.ID, admin.Email, admin.FullName, sqlmock.AnyArg(), admin.CreatedAt, admin.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, adminStore.Create(context.Background(), admin))

		assert.Empty(t, admin.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.HashedPassword), []byte("password1234567")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to ErrEmailExists", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)

		admin, err := domain.NewAdmin("inhaber@fahrschule-sonne.de", "Max Mustermann", "password1234567")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO admins`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolationCode})

		err = adminStore.Create(context.Background(), admin)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid admin never reaches the database", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)

		admin := &domain.Admin{ID: uuid.New(), Email: "inhaber@fahrschule-sonne.de"}
		err := adminStore.Create(context.Background(), admin)
		assert.ErrorIs(t, err, domain.ErrEmptyFullName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresAdminStore_GetByEmail(t *testing.T) {
	columns := []string{"id", "email", "full_name", "hashed_password", "created_at", "updated_at"}

	t.Run("returns the admin", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)
		id := uuid.New()
		now := time.Now().UTC()

		mock.ExpectQuery(`(?s)SELECT .+ FROM admins\s+WHERE email = \$1`).
			WithArgs("inhaber@fahrschule-sonne.de").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				id, "inhaber@fahrschule-sonne.de", "Max Mustermann", "$2a$10$hash", now, now,
			))

		admin, err := adminStore.GetByEmail(context.Background(), "inhaber@fahrschule-sonne.de")
		require.NoError(t, err)
		assert.Equal(t, id, admin.ID)
		assert.Equal(t, "Max Mustermann", admin.FullName)
	})

	t.Run("unknown email maps to ErrAdminNotFound", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)

		mock.ExpectQuery(`(?s)SELECT .+ FROM admins\s+WHERE email = \$1`).
			WithArgs("unbekannt@example.com").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := adminStore.GetByEmail(context.Background(), "unbekannt@example.com")
		assert.ErrorIs(t, err, store.ErrAdminNotFound)
	})
}

func TestPostgresAdminStore_GetByID(t *testing.T) {
	columns := []string{"id", "email", "full_name", "hashed_password", "created_at", "updated_at"}

	t.Run("unknown ID maps to ErrAdminNotFound", func(t *testing.T) {
		adminStore, mock := newAdminStoreWithMock(t)
		id := uuid.New()

		mock.ExpectQuery(`(?s)SELECT .+ FROM admins\s+WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := adminStore.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrAdminNotFound)
	})
}
