package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/mocks"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

func validRegisterPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":       "inhaber@fahrschule-nord.de",
		"password":    "password1234567",
		"full_name":   "Erika Mustermann",
		"school_name": "Fahrschule Nord",
		"address":     "Hafenstraße 12",
		"city":        "Hamburg",
		"postal_code": "20457",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payloadBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	accountService := &mocks.MockAccountService{
		Admin:  &domain.Admin{ID: adminID, Email: "inhaber@fahrschule-nord.de"},
		School: &domain.School{ID: uuid.New(), AdminID: adminID},
	}
	jwtService := &mocks.MockJWTService{Token: "access", RefreshToken: "refresh"}

	handler := NewAuthHandler(accountService, jwtService, time.Hour)

	tests := []struct {
		name       string
		mutate     func(map[string]interface{})
		wantStatus int
	}{
		{
			name:       "valid registration",
			mutate:     func(p map[string]interface{}) {},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			mutate:     func(p map[string]interface{}) { p["email"] = "not-an-email" },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password too short",
			mutate:     func(p map[string]interface{}) { p["password"] = "short" },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing school name",
			mutate:     func(p map[string]interface{}) { delete(p, "school_name") },
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing city",
			mutate:     func(p map[string]interface{}) { delete(p, "city") },
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validRegisterPayload()
			tt.mutate(payload)

			recorder := postJSON(t, handler.Register, "/api/auth/register", payload)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.Equal(t, adminID, resp.AdminID)
				assert.Equal(t, "access", resp.AccessToken)
				assert.Equal(t, "refresh", resp.RefreshToken)
			}
		})
	}

	t.Run("duplicate email yields conflict", func(t *testing.T) {
		dupService := &mocks.MockAccountService{Err: store.ErrEmailExists}
		h := NewAuthHandler(dupService, jwtService, time.Hour)

		recorder := postJSON(t, h.Register, "/api/auth/register", validRegisterPayload())
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	jwtService := &mocks.MockJWTService{Token: "access", RefreshToken: "refresh"}

	t.Run("valid credentials yield token pair", func(t *testing.T) {
		t.Parallel()
		accountService := &mocks.MockAccountService{
			Admin: &domain.Admin{ID: adminID},
		}
		handler := NewAuthHandler(accountService, jwtService, time.Hour)

		recorder := postJSON(t, handler.Login, "/api/auth/login", map[string]interface{}{
			"email":    "inhaber@fahrschule-nord.de",
			"password": "password1234567",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, adminID, resp.AdminID)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("invalid credentials yield 401", func(t *testing.T) {
		t.Parallel()
		accountService := &mocks.MockAccountService{Err: service.ErrInvalidCredentials}
		handler := NewAuthHandler(accountService, jwtService, time.Hour)

		recorder := postJSON(t, handler.Login, "/api/auth/login", map[string]interface{}{
			"email":    "inhaber@fahrschule-nord.de",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&mocks.MockAccountService{}, jwtService, time.Hour)

		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString("{not json"))
		recorder := httptest.NewRecorder()
		handler.Login(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()

	t.Run("valid refresh token yields new pair", func(t *testing.T) {
		t.Parallel()
		jwtService := &mocks.MockJWTService{
			Token:        "new-access",
			RefreshToken: "new-refresh",
			ValidateRefreshTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return &auth.Claims{AdminID: adminID, TokenType: "refresh"}, nil
			},
		}
		handler := NewAuthHandler(&mocks.MockAccountService{}, jwtService, time.Hour)

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "old-refresh",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp AuthResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
		assert.Equal(t, "new-access", resp.AccessToken)
		assert.Equal(t, "new-refresh", resp.RefreshToken)
	})

	t.Run("expired refresh token yields 401", func(t *testing.T) {
		t.Parallel()
		jwtService := &mocks.MockJWTService{ValidateErr: auth.ErrExpiredRefreshToken}
		handler := NewAuthHandler(&mocks.MockAccountService{}, jwtService, time.Hour)

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{
			"refresh_token": "stale",
		})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing refresh token is rejected", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthHandler(&mocks.MockAccountService{}, &mocks.MockJWTService{}, time.Hour)

		recorder := postJSON(t, handler.RefreshToken, "/api/auth/refresh", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
