package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fahrvergleich/fahrvergleich-api/internal/domain"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/market"
	"github.com/fahrvergleich/fahrvergleich-api/internal/domain/pricing"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrSchoolNotFound),
		errors.Is(err, store.ErrAdminNotFound),
		errors.Is(err, service.ErrNoSchool),
		errors.Is(err, market.ErrNoMarketData):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Incomplete price data blocks the strict breakdown but is not a
	// malformed request.
	case errors.Is(err, pricing.ErrInvalidPriceProfile):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, pricing.ErrUnknownExperienceLevel),
		errors.Is(err, domain.ErrInvalidEventType),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	// Not found errors
	case errors.Is(err, store.ErrSchoolNotFound):
		return "School not found"

	case errors.Is(err, store.ErrAdminNotFound):
		return "Account not found"

	case errors.Is(err, service.ErrNoSchool):
		return "No school found for this account"

	case errors.Is(err, market.ErrNoMarketData):
		return "No market data available for this city"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Bad request errors
	case errors.Is(err, pricing.ErrInvalidPriceProfile):
		return "School prices are incomplete"

	case errors.Is(err, pricing.ErrUnknownExperienceLevel):
		return "Unknown experience level"

	case errors.Is(err, domain.ErrInvalidEventType):
		return "Unknown event type"

	case errors.Is(err, domain.ErrNegativePrice):
		return "Prices cannot be negative"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and safe message, writes the
// sanitized response, and logs the redacted details. An explicit userMessage
// overrides the derived safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
