package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput         = "INVALID_INPUT"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeSessionNotActive     = "SESSION_NOT_ACTIVE"
	CodeSessionAlreadyActive = "SESSION_ALREADY_ACTIVE"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)
