// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrConfiguration reports unusable settings, such as a missing or short
	// signing secret. It is fatal for startup and for the issuance endpoint.
	ErrConfiguration = errors.New("configuration error")

	// Anonymous credential verification errors. Every one of them is reported to
	// callers of the identity resolver as ErrInvalidAnonymousCredential.
	ErrMalformedCredential        = errors.New("malformed credential")
	ErrInvalidSignature           = errors.New("invalid signature")
	ErrMalformedPayload           = errors.New("malformed payload")
	ErrWrongCredentialType        = errors.New("wrong credential type")
	ErrCredentialExpired          = errors.New("credential expired")
	ErrInvalidAnonymousCredential = errors.New("invalid anonymous credential")

	// Account session errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrAuthenticationRequired means no usable credential of either kind was presented.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrQuotaExceeded is the expected outcome of consuming past the limit.
	ErrQuotaExceeded = errors.New("quota exceeded")
)
