package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/auth"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountSecret = []byte("account-secret-account-secret-ac")

type stubVerifier struct {
	id    string
	err   error
	calls int
}

func (s *stubVerifier) Verify(context.Context, string) (string, error) {
	s.calls++
	return s.id, s.err
}

type failingDecoder struct{ err error }

func (d failingDecoder) Decode(string) (token.Payload, error) { return token.Payload{}, d.err }

func mint(t *testing.T, codec *token.Codec, subject string, ttl time.Duration) string {
	t.Helper()
	cred, _, err := codec.Encode(token.Payload{SubjectID: subject}, ttl)
	require.NoError(t, err)
	return cred
}

func TestResolve_AccountWins(t *testing.T) {
	codec := newCodec(t, time.Now)
	accounts := &stubVerifier{id: "u-1"}
	r := NewResolver(accounts, codec, nil)

	got, err := r.Resolve(context.Background(), Credentials{
		Bearer:    "session",
		Anonymous: mint(t, codec, "guest", time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, NewAccount("u-1"), got)
}

func TestResolve_ExpiredAccountFallsBackToAnonymous(t *testing.T) {
	codec := newCodec(t, time.Now)
	session, err := auth.GenerateToken("u-1", accountSecret, -time.Minute)
	require.NoError(t, err)

	r := NewResolver(auth.NewVerifier(accountSecret, nil), codec, nil)

	got, err := r.Resolve(context.Background(), Credentials{
		Bearer:    session,
		Anonymous: mint(t, codec, "abc", time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, NewAnonymous("abc"), got)
}

func TestResolve_InvalidAnonymousKeepsCause(t *testing.T) {
	now := epoch
	codec := newCodec(t, func() time.Time { return now })
	cred := mint(t, codec, "abc", time.Hour)
	now = now.Add(time.Hour)

	r := NewResolver(nil, codec, nil)
	_, err := r.Resolve(context.Background(), Credentials{Anonymous: cred})

	assert.True(t, errors.Is(err, common.ErrInvalidAnonymousCredential))
	assert.True(t, errors.Is(err, common.ErrCredentialExpired))
}

func TestResolve_BadAccountAndBadAnonymous(t *testing.T) {
	codec := newCodec(t, time.Now)
	r := NewResolver(&stubVerifier{err: common.ErrInvalidToken}, codec, nil)

	_, err := r.Resolve(context.Background(), Credentials{Bearer: "x", Anonymous: "a.b"})
	assert.True(t, errors.Is(err, common.ErrInvalidAnonymousCredential))
	assert.True(t, errors.Is(err, common.ErrMalformedCredential))
}

func TestResolve_NothingUsable(t *testing.T) {
	codec := newCodec(t, time.Now)

	cases := []struct {
		name     string
		accounts AccountVerifier
		creds    Credentials
	}{
		{name: "no credentials", accounts: &stubVerifier{id: "u"}},
		{name: "rejected session only", accounts: &stubVerifier{err: common.ErrTokenExpired}, creds: Credentials{Bearer: "s"}},
		{name: "session without verifier", creds: Credentials{Bearer: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(tc.accounts, codec, nil)
			_, err := r.Resolve(context.Background(), tc.creds)
			assert.True(t, errors.Is(err, common.ErrAuthenticationRequired), "got %v", err)
		})
	}
}

func TestResolve_MissingCredentialIsNotANewGuest(t *testing.T) {
	accounts := &stubVerifier{}
	r := NewResolver(accounts, newCodec(t, time.Now), nil)

	got, err := r.Resolve(context.Background(), Credentials{})
	require.Error(t, err)
	assert.Equal(t, Identity{}, got)
	assert.Zero(t, accounts.calls)
}

func TestParseBearer(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":     "abc",
		"bearer  abc ":   "abc",
		"Basic Zm9vOmJh": "",
		"abc":            "",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseBearer(in), "input %q", in)
	}
}

func TestResolve_DecoderFailureIsNotBlamedOnCredential(t *testing.T) {
	boom := errors.New("keystore unavailable")
	r := NewResolver(nil, failingDecoder{err: boom}, nil)

	_, err := r.Resolve(context.Background(), Credentials{Anonymous: "a.b.c"})
	require.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, common.ErrInvalidAnonymousCredential))
	assert.False(t, errors.Is(err, common.ErrAuthenticationRequired))
}

func TestResolve_VerificationFailuresAreInvalidCredential(t *testing.T) {
	for _, cause := range []error{
		common.ErrMalformedCredential,
		common.ErrInvalidSignature,
		common.ErrMalformedPayload,
		common.ErrWrongCredentialType,
		common.ErrCredentialExpired,
	} {
		r := NewResolver(nil, failingDecoder{err: cause}, nil)
		_, err := r.Resolve(context.Background(), Credentials{Anonymous: "a.b.c"})
		assert.ErrorIs(t, err, common.ErrInvalidAnonymousCredential, cause.Error())
		assert.ErrorIs(t, err, cause)
	}
}
