package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken   ErrorCode = "AUTH_001"
	AuthInvalidToken   ErrorCode = "AUTH_002"
	AuthExpiredToken   ErrorCode = "AUTH_003"
	AuthSessionExpired ErrorCode = "AUTH_004"
)

// Account authorization error codes (ACCOUNT_*)
const (
	AccountNumberRequired ErrorCode = "ACCOUNT_001"
	AccountMismatch       ErrorCode = "ACCOUNT_002"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_003"
	ValidationInvalidDate   ErrorCode = "VALIDATION_004"
	ValidationInvalidStatus ErrorCode = "VALIDATION_005"
)

// Lead error codes (LEAD_*)
const (
	LeadNotFound       ErrorCode = "LEAD_001"
	LeadDuplicateEmail ErrorCode = "LEAD_002"
	LeadInvalidID      ErrorCode = "LEAD_003"
	LeadEmptyPayload   ErrorCode = "LEAD_004"
)

// Analytics error codes (ANALYTICS_*)
const (
	AnalyticsMissingParams      ErrorCode = "ANALYTICS_001"
	AnalyticsInvalidAggregation ErrorCode = "ANALYTICS_002"
	AnalyticsInvalidField       ErrorCode = "ANALYTICS_003"
	AnalyticsInvalidDateRange   ErrorCode = "ANALYTICS_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemUnexpectedError    ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:   "Unauthorized: authentication token required",
	AuthInvalidToken:   "Unauthorized: invalid authentication token",
	AuthExpiredToken:   "Unauthorized: authentication token has expired",
	AuthSessionExpired: "Session expired, please log in again",

	// Account authorization errors
	AccountNumberRequired: "Account number is required",
	AccountMismatch:       "Access to this account is not permitted",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format. Use ISO 8601 format (YYYY-MM-DD)",
	ValidationInvalidStatus: "Invalid lead status",

	// Lead errors
	LeadNotFound:       "Lead not found",
	LeadDuplicateEmail: "A lead with this email already exists",
	LeadInvalidID:      "Invalid lead ID format",
	LeadEmptyPayload:   "Lead data is required",

	// Analytics errors
	AnalyticsMissingParams:      "xAxis, yAxis, and aggregation are required parameters",
	AnalyticsInvalidAggregation: "Invalid aggregation type. Allowed values: count, sum, avg, min, max",
	AnalyticsInvalidField:       "Invalid chart field",
	AnalyticsInvalidDateRange:   "Invalid date range",

	// System errors
	SystemInternalError:      "Something went wrong!",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
