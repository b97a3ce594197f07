package client

import "errors"

// Sentinel errors returned by the transport layer. Callers should use
// errors.Is to match these values. The error text is not shown to the user
// directly; the view layer maps each sentinel to a user-safe message.
var (
	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Registration errors.
	ErrDuplicateAccount = errors.New("account already exists")
	ErrRegistration     = errors.New("registration failed")

	// Password-reset errors.
	ErrOTPRequest = errors.New("otp request failed")
	ErrInvalidOTP = errors.New("invalid otp")

	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")
	ErrTimeout     = errors.New("request timed out")
)
