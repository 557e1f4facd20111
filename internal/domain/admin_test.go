package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

func TestNewAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		fullName string
		password string
		wantErr  error
	}{
		{
			name:     "valid admin",
			email:    "inhaber@fahrschule-sonne.de",
			fullName: "Max Mustermann",
			password: "password1234567",
		},
		{
			name:     "empty email",
			email:    "",
			fullName: "Max Mustermann",
			password: "password1234567",
			wantErr:  domain.ErrEmptyEmail,
		},
		{
			name:     "invalid email format",
			email:    "not-an-email",
			fullName: "Max Mustermann",
			password: "password1234567",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "empty full name",
			email:    "inhaber@fahrschule-sonne.de",
			fullName: "   ",
			password: "password1234567",
			wantErr:  domain.ErrEmptyFullName,
		},
		{
			name:     "password too short",
			email:    "inhaber@fahrschule-sonne.de",
			fullName: "Max Mustermann",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "inhaber@fahrschule-sonne.de",
			fullName: "Max Mustermann",
			password: strings.Repeat("a", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			admin, err := domain.NewAdmin(tt.email, tt.fullName, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, admin.ID)
			assert.Equal(t, tt.email, admin.Email)
			assert.Equal(t, tt.fullName, admin.FullName)
			assert.False(t, admin.CreatedAt.IsZero())
		})
	}
}

func TestAdmin_Validate_LoadedFromStore(t *testing.T) {
	t.Parallel()

	t.Run("hashed password alone is sufficient", func(t *testing.T) {
		t.Parallel()
		admin := &domain.Admin{
			ID:             uuid.New(),
			Email:          "inhaber@fahrschule-sonne.de",
			FullName:       "Max Mustermann",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		}
		assert.NoError(t, admin.Validate())
	})

	t.Run("neither password nor hash fails", func(t *testing.T) {
		t.Parallel()
		admin := &domain.Admin{
			ID:       uuid.New(),
			Email:    "inhaber@fahrschule-sonne.de",
			FullName: "Max Mustermann",
		}
		assert.ErrorIs(t, admin.Validate(), domain.ErrEmptyPassword)
	})
}
