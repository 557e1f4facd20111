package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fahrvergleich/fahrvergleich-api/internal/config"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/mocks"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
)

// newTestApplication wires an application with mocked services so routing can
// be exercised without a database or external providers.
func newTestApplication(jwtService *mocks.MockJWTService) *application {
	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
			Auth:   config.AuthConfig{TokenLifetimeMinutes: 60},
		},
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		jwtService:        jwtService,
		accountService:    &mocks.MockAccountService{},
		comparisonService: &mocks.MockComparisonService{Cities: []string{"Berlin"}},
		dashboardService:  &mocks.MockDashboardService{},
		billingService:    &mocks.MockBillingService{},
	}
}

func TestRouter_HealthCheck(t *testing.T) {
	t.Parallel()

	app := newTestApplication(&mocks.MockJWTService{})
	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestRouter_PublicRoutes(t *testing.T) {
	t.Parallel()

	app := newTestApplication(&mocks.MockJWTService{})
	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/api/cities", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Cities []string `json:"cities"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, []string{"Berlin"}, resp.Cities)
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	t.Parallel()

	app := newTestApplication(&mocks.MockJWTService{ValidateErr: auth.ErrInvalidToken})
	router := app.setupRouter()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/profile/school"},
		{"GET", "/api/profile/school/prices"},
		{"PUT", "/api/profile/school/prices"},
		{"PUT", "/api/profile/school/settings"},
		{"GET", "/api/profile/statistics"},
		{"POST", "/api/billing/checkout-session"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			req := httptest.NewRequest(p.method, p.path, nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

func TestRouter_AuthenticatedRequestReachesHandler(t *testing.T) {
	t.Parallel()

	adminID := uuid.New()
	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
			return &auth.Claims{AdminID: adminID, TokenType: "access"}, nil
		},
	}
	app := newTestApplication(jwtService)

	school := domain.School{ID: uuid.New(), AdminID: adminID, Name: "Fahrschule Mitte", City: "Berlin", IsPublished: true}
	app.dashboardService = &mocks.MockDashboardService{School: &school}

	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/api/profile/school", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var resp struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Fahrschule Mitte", resp.Name)
}
