package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")
	ErrSlugTaken       = errors.New("slug already in use")

	// Block errors
	ErrLinkNotFound    = errors.New("link not found")
	ErrProductNotFound = errors.New("product not found")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage marks transient persistence failures. Callers may retry the
	// identical event after a confirmed failure; never after a success.
	ErrStorage = errors.New("storage failure")
)
