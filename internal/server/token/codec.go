// Package token encodes and verifies the compact anonymous-identity credential:
// three base64url segments (header.payload.signature) where the signature is an
// HMAC-SHA256 over "header.payload" keyed with the server's signing secret.
package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
	"github.com/golang-jwt/jwt/v5"
)

// AnonymousType tags credentials minted for anonymous identities. Any other
// value is rejected by Decode, so an account session token can never pass as one.
const AnonymousType = "anon_identity"

var segmentEncoding = base64.RawURLEncoding.Strict()

// Payload is the signed content of an anonymous credential. Timestamps are
// Unix seconds.
type Payload struct {
	Type      string
	SubjectID string
	IssuedAt  int64
	ExpiresAt int64
}

// claims is the wire form of Payload.
type claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies credentials with a single injected secret.
type Codec struct {
	secret []byte
	now    timex.Clock
}

type Option func(*Codec)

// WithClock overrides the time source used for stamping and expiry checks.
func WithClock(c timex.Clock) Option {
	return func(codec *Codec) { codec.now = c }
}

// NewCodec returns a Codec bound to secret. An empty secret is a configuration error.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: anonymous signing secret is empty", common.ErrConfiguration)
	}
	c := &Codec{secret: append([]byte(nil), secret...)}
	for _, opt := range opts {
		opt(c)
	}
	c.now = c.now.OrNow()
	return c, nil
}

// Encode stamps p with IssuedAt=now and ExpiresAt=now+ttl, signs it and
// returns the credential together with the stamped payload. An empty Type
// defaults to AnonymousType.
func (c *Codec) Encode(p Payload, ttl time.Duration) (string, Payload, error) {
	secs := int64(ttl / time.Second)
	if secs <= 0 {
		return "", Payload{}, fmt.Errorf("ttl must be at least one second, got %s", ttl)
	}
	if p.Type == "" {
		p.Type = AnonymousType
	}
	p.IssuedAt = c.now().Unix()
	p.ExpiresAt = p.IssuedAt + secs

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Type: p.Type,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID,
			IssuedAt:  jwt.NewNumericDate(time.Unix(p.IssuedAt, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(p.ExpiresAt, 0)),
		},
	})
	s, err := tok.SignedString(c.secret)
	if err != nil {
		return "", Payload{}, fmt.Errorf("sign credential: %w", err)
	}
	return s, p, nil
}

// Decode verifies credential and returns its payload. Checks run in a fixed
// order and the first failure rejects the whole credential: segment count,
// signature, payload decoding, type tag, expiry. Expiry is exclusive: a
// credential whose ExpiresAt equals the current second is already expired.
func (c *Codec) Decode(credential string) (Payload, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return Payload{}, common.ErrMalformedCredential
	}

	sig, err := segmentEncoding.DecodeString(parts[2])
	if err != nil {
		return Payload{}, common.ErrInvalidSignature
	}
	// HMAC verification compares with hmac.Equal.
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, c.secret); err != nil {
		return Payload{}, common.ErrInvalidSignature
	}

	raw, err := segmentEncoding.DecodeString(parts[1])
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	var cl claims
	if err := json.Unmarshal(raw, &cl); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", common.ErrMalformedPayload, err)
	}
	if cl.IssuedAt == nil || cl.ExpiresAt == nil || cl.Subject == "" {
		return Payload{}, fmt.Errorf("%w: missing claims", common.ErrMalformedPayload)
	}

	p := Payload{
		Type:      cl.Type,
		SubjectID: cl.Subject,
		IssuedAt:  cl.IssuedAt.Unix(),
		ExpiresAt: cl.ExpiresAt.Unix(),
	}
	if p.ExpiresAt <= p.IssuedAt {
		return Payload{}, fmt.Errorf("%w: expiry not after issue time", common.ErrMalformedPayload)
	}
	if p.Type != AnonymousType {
		return Payload{}, common.ErrWrongCredentialType
	}
	if c.now().Unix() >= p.ExpiresAt {
		return Payload{}, common.ErrCredentialExpired
	}
	return p, nil
}

// IsVerificationError reports whether err came out of Decode's check chain.
func IsVerificationError(err error) bool {
	for _, target := range []error{
		common.ErrMalformedCredential,
		common.ErrInvalidSignature,
		common.ErrMalformedPayload,
		common.ErrWrongCredentialType,
		common.ErrCredentialExpired,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
