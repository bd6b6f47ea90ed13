package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"
)

// Credentials are the proofs a request carried. Either may be empty.
type Credentials struct {
	Bearer    string
	Anonymous string
}

// AccountVerifier checks a session issued by the account system.
type AccountVerifier interface {
	Verify(ctx context.Context, token string) (accountID string, err error)
}

// AnonymousDecoder verifies an anonymous credential.
type AnonymousDecoder interface {
	Decode(credential string) (token.Payload, error)
}

type Resolver struct {
	accounts  AccountVerifier
	anonymous AnonymousDecoder
	logger    logging.Logger
}

// NewResolver returns a Resolver. accounts may be nil when no account system
// is configured; bearer credentials are then ignored.
func NewResolver(accounts AccountVerifier, anonymous AnonymousDecoder, l logging.Logger) *Resolver {
	if l == nil {
		l = logging.Nop{}
	}
	return &Resolver{accounts: accounts, anonymous: anonymous, logger: l.With("module", "resolver")}
}

// Resolve tries the account session first and the anonymous credential
// second. A bad account session never blocks a good anonymous credential. A
// bad anonymous credential is reported as common.ErrInvalidAnonymousCredential
// wrapping the codec's specific error. Decoder failures outside the codec's
// check chain pass through unchanged. With nothing usable the result is
// common.ErrAuthenticationRequired.
func (r *Resolver) Resolve(ctx context.Context, c Credentials) (Identity, error) {
	if c.Bearer != "" && r.accounts != nil {
		id, err := r.accounts.Verify(ctx, c.Bearer)
		if err == nil {
			return NewAccount(id), nil
		}
		r.logger.Debug(ctx, "account session rejected, trying anonymous credential", "error", err)
	}

	if c.Anonymous != "" {
		if r.anonymous == nil {
			return Identity{}, fmt.Errorf("%w: anonymous decoder is not configured", common.ErrConfiguration)
		}
		p, err := r.anonymous.Decode(c.Anonymous)
		if err != nil {
			if !token.IsVerificationError(err) {
				return Identity{}, fmt.Errorf("decode anonymous credential: %w", err)
			}
			return Identity{}, fmt.Errorf("%w: %w", common.ErrInvalidAnonymousCredential, err)
		}
		return NewAnonymous(p.SubjectID), nil
	}

	return Identity{}, common.ErrAuthenticationRequired
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// value. Anything else yields "".
func ParseBearer(header string) string {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}
