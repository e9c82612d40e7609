package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrDeliveryFailed indicates the verification message could not be delivered
	ErrDeliveryFailed = errors.New("delivery failed")

	// ErrTokenInvalid indicates a service token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")
)
