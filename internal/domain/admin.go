package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Admin
var (
	ErrEmptyAdminID        = errors.New("admin ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyFullName       = errors.New("full name cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Admin represents a driving school operator's login account.
// Each admin owns exactly one school record, linked via School.AdminID.
type Admin struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAdmin creates a new Admin with the given email, full name and password.
// It generates a new UUID for the admin ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the admin structure with the plaintext password.
// The caller is responsible for hashing the password before storing the admin.
func NewAdmin(email, fullName, password string) (*Admin, error) {
	admin := &Admin{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := admin.Validate(); err != nil {
		return nil, err
	}

	return admin, nil
}

// Validate checks if the Admin has valid data.
// Returns an error if any field fails validation.
func (a *Admin) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAdminID
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(a.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(a.FullName) == "" {
		return ErrEmptyFullName
	}

	// During registration the plaintext password is present and must meet
	// the length requirements. For admins loaded from the database only the
	// hashed password is populated.
	if a.Password != "" {
		if len(a.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(a.Password) > 72 { // bcrypt's practical limit
			return ErrPasswordTooLong
		}
	} else if a.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
// Request-level validation uses the validator package's "email" tag;
// this is a last line of defense at the domain boundary.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := strings.Index(domainPart, ".")
	if dotIndex <= 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
