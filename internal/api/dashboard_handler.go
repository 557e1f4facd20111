package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
)

// DashboardHandler handles the authenticated school-operator endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
	validator        *validator.Validate
}

// NewDashboardHandler creates a new DashboardHandler with the given
// dependencies.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		validator:        validator.New(),
	}
}

// GetProfile handles GET /profile/school and returns the admin's own school
// record with all fields.
func (h *DashboardHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	school, err := h.dashboardService.GetSchool(r.Context(), adminID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toOwnerSchoolResponse(school))
}

// UpdatePrices handles PUT /profile/school/prices.
func (h *DashboardHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req UpdatePricesRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	school, err := h.dashboardService.UpdatePrices(
		r.Context(),
		adminID,
		*req.BaseFee,
		*req.DrivingLessonPrice,
		*req.TheoryExamFee,
		*req.PracticalExamFee,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toOwnerSchoolResponse(school))
}

// UpdateSettings handles PUT /profile/school/settings.
func (h *DashboardHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	school, err := h.dashboardService.UpdateSettings(r.Context(), adminID, service.SettingsInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		PostalCode:  req.PostalCode,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
		IsPublished: *req.IsPublished,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toOwnerSchoolResponse(school))
}

// GetPriceBreakdown handles GET /profile/school/prices and returns the
// strict per-level totals for the admin's own school.
func (h *DashboardHandler) GetPriceBreakdown(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	breakdown, err := h.dashboardService.GetPriceBreakdown(r.Context(), adminID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	rows := make([]LevelPriceResponse, 0, len(breakdown))
	for _, row := range breakdown {
		rows = append(rows, LevelPriceResponse{
			Level: string(row.Level),
			Total: row.Total,
		})
	}

	RespondWithJSON(w, r, http.StatusOK, map[string][]LevelPriceResponse{"breakdown": rows})
}

// GetStatistics handles GET /profile/statistics.
func (h *DashboardHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	adminID, ok := requireAdminID(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStatistics(r.Context(), adminID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, StatisticsResponse{
		AverageDrivingLessonPrice: stats.Market.AverageDrivingLessonPrice,
		AverageBaseFee:            stats.Market.AverageBaseFee,
		SchoolCount:               stats.Market.SchoolCount,
		CityRank:                  stats.Market.CityRank,
		Views:                     stats.Engagement.Views,
		WebsiteClicks:             stats.Engagement.WebsiteClicks,
		ContactClicks:             stats.Engagement.ContactClicks,
	})
}
