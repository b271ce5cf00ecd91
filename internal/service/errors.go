package service

import "errors"

// Common service errors
var (
	// ErrNoTenant is returned when the caller context carries no tenant identifier
	ErrNoTenant = errors.New("no tenant in context")

	// ErrNotFound is returned when a resource does not exist in the caller's tenant
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a write collides with current state
	ErrConflict = errors.New("resource conflict")

	// ErrAlreadyConverted is returned when converting a lead that has already
	// been converted; the lead is left untouched
	ErrAlreadyConverted = errors.New("already converted")

	// ErrInvalidTransition is returned when a status change is not permitted,
	// such as any transition out of converted or lost
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorized is returned when no authenticated caller is present
	ErrUnauthorized = errors.New("unauthorized")
)
