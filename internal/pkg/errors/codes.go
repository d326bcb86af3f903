package errors

// Error code constants. Errors contain code + message only; there is no
// separate i18n layer in this system.

// Auth error codes (§4.1, §7).
const (
	CodeAuthFailed       = "AUTH_FAILED"
	CodeAuthForbidden    = "AUTH_FORBIDDEN"
	CodeSelfRegDisabled  = "SELF_REGISTRATION_DISABLED"
	CodeNoLinkingEvent   = "NO_LINKING_ACTION_EVENT"
	CodeAdminCredentials = "INVALID_ADMIN_CREDENTIALS"
)

// Entity conflict/validation error codes (§3 invariants, §7).
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeActionEventConflict  = "ACTION_EVENT_CONFLICT"
	CodeUserRecordConflict   = "USER_RECORD_CONFLICT"
	CodePlatformExists       = "PLATFORM_ALREADY_EXISTS"
	CodeUsernameTaken        = "USERNAME_ALREADY_TAKEN"
	CodeActionProviderExists = "ACTION_PROVIDER_ALREADY_EXISTS"
)

// Internal error codes.
const (
	CodeInternal    = "INTERNAL_ERROR"
	CodeKDFFailure  = "PASSWORD_HASH_FAILURE"
	CodeDatabaseErr = "DATABASE_ERROR"
)
