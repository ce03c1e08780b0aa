package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Game errors
	ErrCodeCategoryRequired   = "category_required"
	ErrCodeUnknownCategory    = "unknown_category"
	ErrCodeInvalidRoundCount  = "invalid_round_count"
	ErrCodeNoActiveSession    = "no_active_session"
	ErrCodeRoundInProgress    = "round_in_progress"
	ErrCodeStartFailed        = "start_failed"
	ErrCodeInvalidRoundChoice = "invalid_round_choice"

	// Settings errors
	ErrCodeSettingsNotPersisted = "settings_not_persisted"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeConnectionError    = "connection_error"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
)
