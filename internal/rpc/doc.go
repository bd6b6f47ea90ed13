// Package rpc holds the Identity service stubs generated from
// proto/shopai/identity/v1/identity.proto and helpers for the ErrorInfo
// details its errors carry.
package rpc

//go:generate sh -c "cd ../.. && buf generate"
