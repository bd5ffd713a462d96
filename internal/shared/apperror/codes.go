package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Render / transport of an already persisted payslip failed.
	CodeDeliveryFailure = "DELIVERY_FAILURE"
	// A delivery adapter is missing required configuration (e.g. SMTP credentials).
	CodeUnconfigured = "UNCONFIGURED"
)
