package services

import "errors"

// Sentinel errors shared by all services. Handlers map these to HTTP
// statuses with errors.Is.
var (
	// ErrNotFound indicates a requested user or puzzle does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates a registration with an already-used email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrGenerationFailed indicates the image provider failed or returned
	// no images.
	ErrGenerationFailed = errors.New("image generation failed")
)
