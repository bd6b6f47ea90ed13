// Package client talks to the identity service from the device.
//
// GRPCClient issues anonymous credentials and reads or consumes quota. An
// interceptor attaches the caller's credentials to every call that needs them.
// When the server rejects the anonymous credential the interceptor discards
// it, obtains a fresh one from its CredentialSource and retries once.
//
// InitDatabase opens the local SQLite store and applies the embedded
// migrations.
//
// Errors are mapped to ErrUnavailable, ErrUnauthorized and
// common.ErrQuotaExceeded so callers can match them with errors.Is.
package client
