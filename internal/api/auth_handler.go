package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accountService service.AccountService
	jwtService     auth.JWTService
	tokenLifetime  time.Duration
	validator      *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accountService service.AccountService,
	jwtService auth.JWTService,
	tokenLifetime time.Duration,
) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		jwtService:     jwtService,
		tokenLifetime:  tokenLifetime,
		validator:      validator.New(),
	}
}

// Register handles the /auth/register endpoint. It creates the admin account
// together with its school record.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	admin, _, err := h.accountService.Register(r.Context(), service.RegistrationInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		SchoolName: req.SchoolName,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTokens(w, r, http.StatusCreated, admin.ID)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	admin, err := h.accountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, admin.ID)
}

// RefreshToken handles the /auth/refresh endpoint. A valid refresh token
// yields a fresh access/refresh token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest

	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTokens(w, r, http.StatusOK, claims.AdminID)
}

// respondWithTokens generates a token pair for the admin and writes the auth
// response.
func (h *AuthHandler) respondWithTokens(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	adminID uuid.UUID,
) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), adminID)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "admin_id", adminID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), adminID)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "admin_id", adminID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	RespondWithJSON(w, r, status, AuthResponse{
		AdminID:      adminID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(h.tokenLifetime).UTC().Format(time.RFC3339),
	})
}
