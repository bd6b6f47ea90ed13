// Package auth verifies account session tokens issued by the account system.
// Sessions are HS256 JWTs carrying the account id; the verifier only checks
// them, it never stores or revokes anything.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the account session payload. Older sessions put the account id
// in UserID, newer ones in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Type   string `json:"type,omitempty"`
	UserID string `json:"uid,omitempty"`
}

// AccountID returns the id the session was issued for.
func (c *Claims) AccountID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// GenerateToken mints an account session for userID in the format Verifier
// accepts. The account system owns issuance; tests use this to stand in for it.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})
	return tok.SignedString(secretKey)
}

// Verifier checks account session tokens against the account system's secret.
type Verifier struct {
	secret []byte
	now    timex.Clock
}

// NewVerifier returns a Verifier for secret. The clock may be nil.
func NewVerifier(secret []byte, now timex.Clock) *Verifier {
	return &Verifier{secret: secret, now: now.OrNow()}
}

// Verify returns the account id carried by tokenString. Expired sessions
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func (v *Verifier) Verify(_ context.Context, tokenString string) (string, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !tok.Valid {
		return "", common.ErrInvalidToken
	}
	// An anonymous credential signed with a shared secret must not pass as a session.
	if claims.Type == token.AnonymousType {
		return "", fmt.Errorf("%w: anonymous credential presented as session", common.ErrInvalidToken)
	}

	id := claims.AccountID()
	if id == "" {
		return "", fmt.Errorf("%w: no account id", common.ErrInvalidToken)
	}
	return id, nil
}
