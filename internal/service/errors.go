package service

import "errors"

// Common service errors, mapped to HTTP error codes at the handler boundary.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAccessDenied       = errors.New("caller does not own this resource")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyEnrolled    = errors.New("student already enrolled in this class")
	ErrRequestPending     = errors.New("join request already pending")
	ErrInvalidAction      = errors.New("unknown review action")
)
