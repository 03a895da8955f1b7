package httputil

// Machine-readable error codes returned alongside error messages.
// Clients should branch on these, not on message text.
const (
	CodeInternalError      = "internal_error"
	CodeInvalidRequestBody = "invalid_request_body"
	CodeInvalidQueryParam  = "invalid_query_param"
	CodeTooManyRequests    = "too_many_requests"

	// Auth
	CodeInvalidCredentials   = "invalid_credentials"
	CodeInvalidAuthHeader    = "invalid_auth_header"
	CodeMissingAuth          = "missing_auth"
	CodeTokenExpired         = "token_expired"
	CodeInvalidToken         = "invalid_token"
	CodeInvalidTokenUserID   = "invalid_token_user_id"
	CodeRefreshTokenRequired = "refresh_token_required"
	CodeInvalidRefreshToken  = "invalid_refresh_token"

	// Registration validation
	CodeEmailAlreadyExists = "email_already_exists"
	CodeEmailRequired      = "email_required"
	CodeInvalidEmailFormat = "invalid_email_format"
	CodeNameInvalid        = "name_invalid"
	CodePasswordRequired   = "password_required"
	CodePasswordTooShort   = "password_too_short"
	CodePasswordTooLong    = "password_too_long"
	CodePasswordTooWeak    = "password_too_weak"

	// Rating
	CodeUserNotFound = "user_not_found"
)
