package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (e.g., ErrSchoolNotFound, ErrAdminNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an admin with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist (foreign key
	// violation). Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrSchoolNotFound indicates that the requested school does not exist.
	ErrSchoolNotFound = fmt.Errorf("%w: school", ErrNotFound)

	// ErrAdminNotFound indicates that the requested admin does not exist.
	ErrAdminNotFound = fmt.Errorf("%w: admin", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that an admin with the given email already
	// exists. Returned when registering with an email that is in use.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
