package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors, detected before any network call
	ErrCredentialsRequired = errors.New("email and password are required")

	// Configuration errors
	ErrMissingCredential = errors.New("no provider API key is configured")
	ErrAuthNotConfigured = errors.New("authentication service is not configured")
)

// Context keys for error values
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)
