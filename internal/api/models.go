package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
)

// Common request/response structures

// RegisterRequest defines the payload for the registration endpoint.
// Registration always creates the admin account and the school together.
type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=12,max=72"`
	FullName string `json:"full_name" validate:"required"`

	SchoolName string `json:"school_name" validate:"required"`
	Address    string `json:"address"     validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// AdminID is the unique identifier for the authenticated admin
	AdminID uuid.UUID `json:"admin_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// TrackEventRequest defines the payload for the engagement tracking endpoint.
type TrackEventRequest struct {
	EventType string `json:"event_type" validate:"required,oneof=view website_click phone_click email_click"`
}

// UpdatePricesRequest defines the payload for the price update endpoint.
// Pointer fields so that an explicit 0 is distinguishable from an omitted
// field; all four prices must be submitted together.
type UpdatePricesRequest struct {
	BaseFee            *int64 `json:"base_fee"             validate:"required,min=0"`
	DrivingLessonPrice *int64 `json:"driving_lesson_price" validate:"required,min=0"`
	TheoryExamFee      *int64 `json:"theory_exam_fee"      validate:"required,min=0"`
	PracticalExamFee   *int64 `json:"practical_exam_fee"   validate:"required,min=0"`
}

// UpdateSettingsRequest defines the payload for the listing settings endpoint.
type UpdateSettingsRequest struct {
	Name        string `json:"name"         validate:"required"`
	Address     string `json:"address"      validate:"required"`
	City        string `json:"city"         validate:"required"`
	PostalCode  string `json:"postal_code"  validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	Email       string `json:"email"        validate:"omitempty,email"`
	Website     string `json:"website"      validate:"omitempty,url"`
	IsPublished *bool  `json:"is_published" validate:"required"`
}

// SchoolResponse is the public representation of a school listing.
// Contact details are only populated for premium schools on the public
// surface; the owner's dashboard always sees them.
type SchoolResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`

	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
	Website     string `json:"website,omitempty"`

	BaseFee            *int64 `json:"base_fee"`
	DrivingLessonPrice *int64 `json:"driving_lesson_price"`
	TheoryExamFee      *int64 `json:"theory_exam_fee"`
	PracticalExamFee   *int64 `json:"practical_exam_fee"`

	IsPremium   bool `json:"is_premium"`
	IsPublished bool `json:"is_published,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RankedSchoolResponse is one row of a city comparison listing.
type RankedSchoolResponse struct {
	Rank       int            `json:"rank"`
	TotalPrice int64          `json:"total_price"`
	School     SchoolResponse `json:"school"`
}

// ComparisonResponse is the full city comparison listing.
type ComparisonResponse struct {
	City    string                 `json:"city"`
	Level   string                 `json:"level"`
	Schools []RankedSchoolResponse `json:"schools"`
}

// CitiesResponse lists the cities available for comparison.
type CitiesResponse struct {
	Cities []string `json:"cities"`
}

// LevelPriceResponse is one row of a school's own price breakdown.
type LevelPriceResponse struct {
	Level string `json:"level"`
	Total int64  `json:"total"`
}

// StatisticsResponse bundles market statistics and the engagement summary
// for the dashboard.
type StatisticsResponse struct {
	AverageDrivingLessonPrice int64 `json:"average_driving_lesson_price"`
	AverageBaseFee            int64 `json:"average_base_fee"`
	SchoolCount               int   `json:"school_count"`
	CityRank                  int   `json:"city_rank"`

	Views         int `json:"views"`
	WebsiteClicks int `json:"website_clicks"`
	ContactClicks int `json:"contact_clicks"`
}

// CheckoutSessionResponse carries the payment redirect URL.
type CheckoutSessionResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

// toPublicSchoolResponse converts a domain school for the public surface.
// Contact details are withheld from non-premium listings.
func toPublicSchoolResponse(school *domain.School) SchoolResponse {
	resp := SchoolResponse{
		ID:                 school.ID,
		Name:               school.Name,
		Address:            school.Address,
		City:               school.City,
		PostalCode:         school.PostalCode,
		BaseFee:            school.BaseFee,
		DrivingLessonPrice: school.DrivingLessonPrice,
		TheoryExamFee:      school.TheoryExamFee,
		PracticalExamFee:   school.PracticalExamFee,
		IsPremium:          school.IsPremium,
		CreatedAt:          school.CreatedAt,
	}

	if school.IsPremium {
		resp.PhoneNumber = school.PhoneNumber
		resp.Email = school.Email
		resp.Website = school.Website
	}

	return resp
}

// toOwnerSchoolResponse converts a domain school for the owner's dashboard,
// including all fields.
func toOwnerSchoolResponse(school *domain.School) SchoolResponse {
	resp := toPublicSchoolResponse(school)
	resp.PhoneNumber = school.PhoneNumber
	resp.Email = school.Email
	resp.Website = school.Website
	resp.IsPublished = school.IsPublished
	return resp
}

// toComparisonResponse converts ranked schools into the listing payload,
// assigning 1-based display ranks.
func toComparisonResponse(city, level string, ranked []market.RankedSchool) ComparisonResponse {
	rows := make([]RankedSchoolResponse, 0, len(ranked))
	for i := range ranked {
		rows = append(rows, RankedSchoolResponse{
			Rank:       i + 1,
			TotalPrice: ranked[i].TotalPrice,
			School:     toPublicSchoolResponse(&ranked[i].School),
		})
	}

	return ComparisonResponse{
		City:    city,
		Level:   level,
		Schools: rows,
	}
}
