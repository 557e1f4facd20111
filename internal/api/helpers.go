package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/api/shared"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
)

// Re-exported shared helpers so handlers read without package noise.
var (
	DecodeJSON             = shared.DecodeJSON
	ValidateRequest        = shared.ValidateRequest
	RespondWithJSON        = shared.RespondWithJSON
	RespondWithError       = shared.RespondWithError
	RespondWithErrorAndLog = shared.RespondWithErrorAndLog
)

// getAdminIDFromContext extracts the authenticated admin's UUID from the
// request context. The admin ID is placed in the context by the
// authentication middleware.
func getAdminIDFromContext(r *http.Request) (uuid.UUID, bool) {
	adminID, ok := r.Context().Value(shared.AdminIDContextKey).(uuid.UUID)
	if !ok || adminID == uuid.Nil {
		return uuid.Nil, false
	}
	return adminID, true
}

// requireAdminID extracts the admin ID from the context and writes a 401
// response if it is missing. Returns false when the response has been
// written.
func requireAdminID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	adminID, ok := getAdminIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return adminID, true
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
