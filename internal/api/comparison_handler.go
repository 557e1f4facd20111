package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
)

// defaultExperienceLevel is assumed when a comparison request doesn't name
// one.
const defaultExperienceLevel = pricing.LevelBeginner

// ComparisonHandler handles the public, unauthenticated comparison endpoints.
type ComparisonHandler struct {
	comparisonService service.ComparisonService
	validator         *validator.Validate
}

// NewComparisonHandler creates a new ComparisonHandler with the given
// dependencies.
func NewComparisonHandler(comparisonService service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		validator:         validator.New(),
	}
}

// ListCities handles GET /cities.
func (h *ComparisonHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.comparisonService.ListCities(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cities")
		return
	}

	if cities == nil {
		cities = []string{}
	}

	RespondWithJSON(w, r, http.StatusOK, CitiesResponse{Cities: cities})
}

// CompareCity handles GET /schools?city=...&level=... and returns the ranked
// listing for one city.
func (h *ComparisonHandler) CompareCity(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		RespondWithError(w, r, http.StatusBadRequest, "Query parameter 'city' is required")
		return
	}

	level := pricing.ExperienceLevel(r.URL.Query().Get("level"))
	if level == "" {
		level = defaultExperienceLevel
	}

	ranked, err := h.comparisonService.CompareCity(r.Context(), city, level)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toComparisonResponse(city, string(level), ranked))
}

// GetSchool handles GET /schools/{schoolID} and returns one published
// school's listing.
func (h *ComparisonHandler) GetSchool(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getPathUUID(r, "schoolID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	school, err := h.comparisonService.GetSchool(r.Context(), schoolID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, toPublicSchoolResponse(school))
}

// TrackEvent handles POST /schools/{schoolID}/events and records an
// anonymous engagement event.
func (h *ComparisonHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getPathUUID(r, "schoolID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TrackEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	eventType := domain.EngagementEventType(req.EventType)
	if err := h.comparisonService.TrackEngagement(r.Context(), schoolID, eventType); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Levels handles GET /levels and enumerates the valid experience levels for
// clients building a comparison form.
func (h *ComparisonHandler) Levels(w http.ResponseWriter, r *http.Request) {
	levels := pricing.Levels()
	names := make([]string, 0, len(levels))
	for _, level := range levels {
		names = append(names, string(level))
	}

	RespondWithJSON(w, r, http.StatusOK, map[string][]string{"levels": names})
}
