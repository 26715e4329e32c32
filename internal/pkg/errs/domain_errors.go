package errs

import "errors"

// Domain-specific sentinel errors for the distribution pipeline
var (
	// Schedule errors
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrInvalidTimeRange  = errors.New("invalid time range")

	// Channel errors
	ErrCapability           = errors.New("channel capability unavailable")
	ErrAuthentication       = errors.New("channel authentication failed")
	ErrChannelTimeout       = errors.New("channel call timed out")
	ErrChannelNotConfigured = errors.New("channel not configured")
	ErrUnknownChannel       = errors.New("unknown channel")

	// Coordinator errors
	ErrNoChannels = errors.New("no distributable channels resolved")

	// Idempotency errors
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")
	ErrDistributionInProgress = errors.New("distribution already in progress")
)
