package client

import (
	"context"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/client/repositories/credentials"
)

// Client is the device's view of the identity service.
type Client interface {
	Close() error
	IssueAnonymous(ctx context.Context) (credentials.StoredCredential, error)
	GetQuota(ctx context.Context) (*Quota, error)
	Authorize(ctx context.Context) (*Quota, error)
}

// CredentialSource hands out the anonymous credential to attach to calls.
type CredentialSource interface {
	// Credential returns a usable credential, issuing one if needed.
	Credential(ctx context.Context) (string, error)
	// Current returns the stored credential if it has not expired, or "".
	// It never calls the server.
	Current(ctx context.Context) string
	Invalidate(ctx context.Context) error
}

// Quota is the server's answer to a quota peek or consume.
type Quota struct {
	Subject   string
	Kind      string
	Allowed   bool
	Limit     int64
	Used      int64
	Remaining int64
	ResetAt   time.Time
	FailOpen  bool
}
