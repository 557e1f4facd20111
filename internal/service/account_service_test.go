package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/mocks"
	. "github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRegistration() RegistrationInput {
	return RegistrationInput{
		Email:      "inhaber@fahrschule-mueller.de",
		Password:   "sehr-sicheres-passwort",
		FullName:   "Max Müller",
		SchoolName: "Fahrschule Müller",
		Address:    "Hauptstraße 1",
		City:       "Berlin",
		PostalCode: "10115",
	}
}

func TestAccountService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates admin and school in one transaction", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectCommit()

		var createdAdmin *domain.Admin
		var createdSchool *domain.School
		adminStore := &mocks.MockAdminStore{
			CreateFn: func(ctx context.Context, admin *domain.Admin) error {
				createdAdmin = admin
				return nil
			},
		}
		schoolStore := &mocks.MockSchoolStore{
			CreateFn: func(ctx context.Context, school *domain.School) error {
				createdSchool = school
				return nil
			},
		}

		svc := NewAccountService(adminStore, schoolStore, &mocks.MockPasswordVerifier{}, db, testLogger())

		admin, school, err := svc.Register(context.Background(), validRegistration())
		require.NoError(t, err)
		require.NotNil(t, admin)
		require.NotNil(t, school)

		assert.Equal(t, admin, createdAdmin)
		assert.Equal(t, school, createdSchool)
		assert.Equal(t, admin.ID, school.AdminID)
		assert.Equal(t, "Berlin", school.City)
		assert.True(t, school.IsPublished)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when school creation fails", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		adminStore := &mocks.MockAdminStore{}
		schoolStore := &mocks.MockSchoolStore{Err: store.ErrInvalidEntity}

		svc := NewAccountService(adminStore, schoolStore, &mocks.MockPasswordVerifier{}, db, testLogger())

		_, _, err = svc.Register(context.Background(), validRegistration())
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces duplicate email", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		adminStore := &mocks.MockAdminStore{Err: store.ErrEmailExists}
		schoolStore := &mocks.MockSchoolStore{}

		svc := NewAccountService(adminStore, schoolStore, &mocks.MockPasswordVerifier{}, db, testLogger())

		_, _, err = svc.Register(context.Background(), validRegistration())
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("rejects invalid input before touching the database", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		input := validRegistration()
		input.Password = "short"

		svc := NewAccountService(&mocks.MockAdminStore{}, &mocks.MockSchoolStore{}, &mocks.MockPasswordVerifier{}, db, testLogger())

		_, _, err = svc.Register(context.Background(), input)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	t.Parallel()

	admin := &domain.Admin{
		Email:          "inhaber@fahrschule-mueller.de",
		HashedPassword: "$2a$10$hash",
	}

	t.Run("returns admin on valid credentials", func(t *testing.T) {
		t.Parallel()
		adminStore := &mocks.MockAdminStore{Admin: admin}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: true}

		svc := NewAccountService(adminStore, &mocks.MockSchoolStore{}, verifier, nil, testLogger())

		got, err := svc.Authenticate(context.Background(), admin.Email, "sehr-sicheres-passwort")
		require.NoError(t, err)
		assert.Equal(t, admin, got)
		assert.Equal(t, 1, verifier.CompareCallCount)
		assert.Equal(t, admin.HashedPassword, verifier.CompareCalledWith.HashedPassword)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		t.Parallel()
		adminStore := &mocks.MockAdminStore{Err: store.ErrAdminNotFound}

		svc := NewAccountService(adminStore, &mocks.MockSchoolStore{}, &mocks.MockPasswordVerifier{}, nil, testLogger())

		_, err := svc.Authenticate(context.Background(), "unknown@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		t.Parallel()
		adminStore := &mocks.MockAdminStore{Admin: admin}
		verifier := &mocks.MockPasswordVerifier{ShouldSucceed: false}

		svc := NewAccountService(adminStore, &mocks.MockSchoolStore{}, verifier, nil, testLogger())

		_, err := svc.Authenticate(context.Background(), admin.Email, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
