// Package identity mints anonymous identities and resolves inbound
// credentials into the caller's Identity.
package identity

import "context"

// Kind says which proof established an Identity.
type Kind int

const (
	Anonymous Kind = iota
	Account
)

func (k Kind) String() string {
	switch k {
	case Account:
		return "account"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

const (
	accountPrefix   = "account:"
	anonymousPrefix = "anon:"
)

// Identity is the resolved caller. The zero value is not a valid identity.
type Identity struct {
	Kind Kind
	ID   string
}

func NewAccount(id string) Identity   { return Identity{Kind: Account, ID: id} }
func NewAnonymous(id string) Identity { return Identity{Kind: Anonymous, ID: id} }

// Subject is the quota ledger key. The two prefixes are disjoint, so an
// account and a guest can never share a counter.
func (i Identity) Subject() string {
	if i.Kind == Account {
		return accountPrefix + i.ID
	}
	return anonymousPrefix + i.ID
}

type ctxKey struct{}

// WithIdentity stores id in ctx for handlers downstream of authentication.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the Identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
