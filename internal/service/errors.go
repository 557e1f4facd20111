// Package service provides application-level services gluing the domain
// packages to the persistence and platform layers: account registration and
// login, the public comparison surface, the school dashboard, and premium
// billing.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or a wrong password. The two cases are deliberately indistinguishable
	// to the caller. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoSchool indicates the authenticated admin owns no school record.
	// This points at a partially failed registration and should map to
	// HTTP 404 Not Found.
	ErrNoSchool = errors.New("admin owns no school")
)
