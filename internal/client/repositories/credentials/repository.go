// Package credentials persists the device's anonymous credential.
//
// The stored state is exactly three fields: the token, the subject id and the
// expiry. A refresh overwrites all three at once and Clear removes all three.
package credentials

import (
	"context"
	"errors"
	"time"
)

// ErrCorrupt means the stored fields are incomplete or cannot be unsealed.
// Callers should clear the store and treat the credential as absent.
var ErrCorrupt = errors.New("stored credential is corrupt")

type StoredCredential struct {
	Token     string
	SubjectID string
	ExpiresAt time.Time
}

type Repository interface {
	// Load returns (nil, nil) when nothing is stored.
	Load(ctx context.Context) (*StoredCredential, error)
	Save(ctx context.Context, c StoredCredential) error
	Clear(ctx context.Context) error
}
