package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
)

// MockAccountService implements service.AccountService for testing
type MockAccountService struct {
	RegisterFn     func(ctx context.Context, input service.RegistrationInput) (*domain.Admin, *domain.School, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.Admin, error)
	GetAdminFn     func(ctx context.Context, adminID uuid.UUID) (*domain.Admin, error)

	// Default values used when functions aren't explicitly defined
	Admin  *domain.Admin
	School *domain.School
	Err    error
}

var _ service.AccountService = (*MockAccountService)(nil)

// Register implements the service.AccountService interface
func (m *MockAccountService) Register(
	ctx context.Context,
	input service.RegistrationInput,
) (*domain.Admin, *domain.School, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, input)
	}
	return m.Admin, m.School, m.Err
}

// Authenticate implements the service.AccountService interface
func (m *MockAccountService) Authenticate(ctx context.Context, email, password string) (*domain.Admin, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return m.Admin, m.Err
}

// GetAdmin implements the service.AccountService interface
func (m *MockAccountService) GetAdmin(ctx context.Context, adminID uuid.UUID) (*domain.Admin, error) {
	if m.GetAdminFn != nil {
		return m.GetAdminFn(ctx, adminID)
	}
	return m.Admin, m.Err
}

// MockComparisonService implements service.ComparisonService for testing
type MockComparisonService struct {
	ListCitiesFn      func(ctx context.Context) ([]string, error)
	CompareCityFn     func(ctx context.Context, city string, level pricing.ExperienceLevel) ([]market.RankedSchool, error)
	GetSchoolFn       func(ctx context.Context, schoolID uuid.UUID) (*domain.School, error)
	TrackEngagementFn func(ctx context.Context, schoolID uuid.UUID, eventType domain.EngagementEventType) error

	// Default values used when functions aren't explicitly defined
	Cities []string
	Ranked []market.RankedSchool
	School *domain.School
	Err    error
}

var _ service.ComparisonService = (*MockComparisonService)(nil)

// ListCities implements the service.ComparisonService interface
func (m *MockComparisonService) ListCities(ctx context.Context) ([]string, error) {
	if m.ListCitiesFn != nil {
		return m.ListCitiesFn(ctx)
	}
	return m.Cities, m.Err
}

// CompareCity implements the service.ComparisonService interface
func (m *MockComparisonService) CompareCity(
	ctx context.Context,
	city string,
	level pricing.ExperienceLevel,
) ([]market.RankedSchool, error) {
	if m.CompareCityFn != nil {
		return m.CompareCityFn(ctx, city, level)
	}
	return m.Ranked, m.Err
}

// GetSchool implements the service.ComparisonService interface
func (m *MockComparisonService) GetSchool(ctx context.Context, schoolID uuid.UUID) (*domain.School, error) {
	if m.GetSchoolFn != nil {
		return m.GetSchoolFn(ctx, schoolID)
	}
	return m.School, m.Err
}

// TrackEngagement implements the service.ComparisonService interface
func (m *MockComparisonService) TrackEngagement(
	ctx context.Context,
	schoolID uuid.UUID,
	eventType domain.EngagementEventType,
) error {
	if m.TrackEngagementFn != nil {
		return m.TrackEngagementFn(ctx, schoolID, eventType)
	}
	return m.Err
}

// MockDashboardService implements service.DashboardService for testing
type MockDashboardService struct {
	GetSchoolFn         func(ctx context.Context, adminID uuid.UUID) (*domain.School, error)
	UpdatePricesFn      func(ctx context.Context, adminID uuid.UUID, baseFee, lessonPrice, theoryFee, practicalFee int64) (*domain.School, error)
	UpdateSettingsFn    func(ctx context.Context, adminID uuid.UUID, input service.SettingsInput) (*domain.School, error)
	GetPriceBreakdownFn func(ctx context.Context, adminID uuid.UUID) ([]service.LevelPrice, error)
	GetStatisticsFn     func(ctx context.Context, adminID uuid.UUID) (*service.DashboardStatistics, error)

	// Default values used when functions aren't explicitly defined
	School    *domain.School
	Breakdown []service.LevelPrice
	Stats     *service.DashboardStatistics
	Err       error
}

var _ service.DashboardService = (*MockDashboardService)(nil)

// GetSchool implements the service.DashboardService interface
func (m *MockDashboardService) GetSchool(ctx context.Context, adminID uuid.UUID) (*domain.School, error) {
	if m.GetSchoolFn != nil {
		return m.GetSchoolFn(ctx, adminID)
	}
	return m.School, m.Err
}

// UpdatePrices implements the service.DashboardService interface
func (m *MockDashboardService) UpdatePrices(
	ctx context.Context,
	adminID uuid.UUID,
	baseFee, lessonPrice, theoryFee, practicalFee int64,
) (*domain.School, error) {
	if m.UpdatePricesFn != nil {
		return m.UpdatePricesFn(ctx, adminID, baseFee, lessonPrice, theoryFee, practicalFee)
	}
	return m.School, m.Err
}

// UpdateSettings implements the service.DashboardService interface
func (m *MockDashboardService) UpdateSettings(
	ctx context.Context,
	adminID uuid.UUID,
	input service.SettingsInput,
) (*domain.School, error) {
	if m.UpdateSettingsFn != nil {
		return m.UpdateSettingsFn(ctx, adminID, input)
	}
	return m.School, m.Err
}

// GetPriceBreakdown implements the service.DashboardService interface
func (m *MockDashboardService) GetPriceBreakdown(
	ctx context.Context,
	adminID uuid.UUID,
) ([]service.LevelPrice, error) {
	if m.GetPriceBreakdownFn != nil {
		return m.GetPriceBreakdownFn(ctx, adminID)
	}
	return m.Breakdown, m.Err
}

// GetStatistics implements the service.DashboardService interface
func (m *MockDashboardService) GetStatistics(
	ctx context.Context,
	adminID uuid.UUID,
) (*service.DashboardStatistics, error) {
	if m.GetStatisticsFn != nil {
		return m.GetStatisticsFn(ctx, adminID)
	}
	return m.Stats, m.Err
}

// MockBillingService implements service.BillingService for testing
type MockBillingService struct {
	StartPremiumCheckoutFn func(ctx context.Context, adminID uuid.UUID) (string, error)
	HandleWebhookFn        func(ctx context.Context, payload []byte, signatureHeader string) error

	// Default values used when functions aren't explicitly defined
	CheckoutURL string
	Err         error
}

var _ service.BillingService = (*MockBillingService)(nil)

// StartPremiumCheckout implements the service.BillingService interface
func (m *MockBillingService) StartPremiumCheckout(ctx context.Context, adminID uuid.UUID) (string, error) {
	if m.StartPremiumCheckoutFn != nil {
		return m.StartPremiumCheckoutFn(ctx, adminID)
	}
	return m.CheckoutURL, m.Err
}

// HandleWebhook implements the service.BillingService interface
func (m *MockBillingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if m.HandleWebhookFn != nil {
		return m.HandleWebhookFn(ctx, payload, signatureHeader)
	}
	return m.Err
}
