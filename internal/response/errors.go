package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// Authentication
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrEmailTaken         ErrCode = "EMAIL_ALREADY_REGISTERED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// Authorization
	ErrForbidden           ErrCode = "FORBIDDEN"
	ErrProfessorAccessOnly ErrCode = "PROFESSOR_ACCESS_ONLY"
	ErrStudentAccessOnly   ErrCode = "STUDENT_ACCESS_ONLY"

	// Validation
	ErrValidation    ErrCode = "VALIDATION_ERROR"
	ErrInvalidID     ErrCode = "INVALID_ID"
	ErrInvalidStatus ErrCode = "INVALID_STATUS"
	ErrInvalidAction ErrCode = "INVALID_ACTION"

	// Resources
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// Class workflow
	ErrAlreadyEnrolled ErrCode = "ALREADY_ENROLLED"
	ErrRequestPending  ErrCode = "REQUEST_ALREADY_PENDING"

	// Rate limiting
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// Server
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrEmailTaken:
		return "An account with this email already exists."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrProfessorAccessOnly:
		return "This resource is restricted to professors."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."

	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidStatus:
		return "Unknown review status."
	case ErrInvalidAction:
		return "Unknown or inapplicable review action."

	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	case ErrAlreadyEnrolled:
		return "You are already enrolled in this class."
	case ErrRequestPending:
		return "You already have a pending request for this class."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
