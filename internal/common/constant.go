package common

// Header and metadata keys carrying caller credentials. gRPC metadata keys are
// lower-case, HTTP lookups are case-insensitive, so the same names serve both.
const (
	AuthorizationHeaderName  = "authorization"
	AnonymousTokenHeaderName = "x-anonymous-token"
)

// Reasons attached to transport errors so clients can tell failures apart.
const (
	ReasonAuthenticationRequired     = "AUTHENTICATION_REQUIRED"
	ReasonInvalidAnonymousCredential = "INVALID_ANONYMOUS_CREDENTIAL"
	ReasonQuotaExceeded              = "QUOTA_EXCEEDED"
	ReasonConfiguration              = "CONFIGURATION_ERROR"
)

// ErrorDomain is the domain reported in gRPC ErrorInfo details.
const ErrorDomain = "identity.shopai"
