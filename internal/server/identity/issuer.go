package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"
	"github.com/google/uuid"
)

// DefaultTTL is the lifetime of a freshly minted anonymous credential.
const DefaultTTL = 30 * 24 * time.Hour

// Issued is what the bootstrap endpoint hands back to a device.
type Issued struct {
	Credential string
	SubjectID  string
	ExpiresAt  time.Time
}

type Issuer struct {
	codec  *token.Codec
	ttl    time.Duration
	newID  func() string
	logger logging.Logger
}

type IssuerOption func(*Issuer)

// WithIDSource replaces the random subject generator. Tests use it to pin ids.
func WithIDSource(f func() string) IssuerOption {
	return func(i *Issuer) { i.newID = f }
}

func NewIssuer(codec *token.Codec, ttl time.Duration, l logging.Logger, opts ...IssuerOption) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if l == nil {
		l = logging.Nop{}
	}
	i := &Issuer{
		codec:  codec,
		ttl:    ttl,
		newID:  uuid.NewString,
		logger: l.With("module", "issuer"),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue mints a brand-new anonymous identity. Every call yields a distinct
// subject; nothing is stored server side.
func (i *Issuer) Issue(ctx context.Context) (*Issued, error) {
	if i.codec == nil {
		return nil, fmt.Errorf("%w: issuer has no signing codec", common.ErrConfiguration)
	}

	credential, p, err := i.codec.Encode(token.Payload{SubjectID: i.newID()}, i.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue anonymous credential: %w", err)
	}

	i.logger.Debug(ctx, "anonymous identity issued", "subject_id", p.SubjectID, "expires_at", p.ExpiresAt)

	return &Issued{
		Credential: credential,
		SubjectID:  p.SubjectID,
		ExpiresAt:  time.Unix(p.ExpiresAt, 0).UTC(),
	}, nil
}
