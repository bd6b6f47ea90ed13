package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newCodec(t *testing.T, now func() time.Time) *token.Codec {
	t.Helper()
	c, err := token.NewCodec([]byte(testSecret), token.WithClock(now))
	require.NoError(t, err)
	return c
}

func TestIssue_MintsVerifiableCredential(t *testing.T) {
	codec := newCodec(t, func() time.Time { return epoch })
	iss := NewIssuer(codec, 0, nil)

	got, err := iss.Issue(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(got.SubjectID)
	assert.NoError(t, err, "subject id should be a random UUID")
	assert.True(t, epoch.Add(DefaultTTL).Equal(got.ExpiresAt), "expires at %s", got.ExpiresAt)

	p, err := codec.Decode(got.Credential)
	require.NoError(t, err)
	assert.Equal(t, got.SubjectID, p.SubjectID)
	assert.Equal(t, token.AnonymousType, p.Type)
}

func TestIssue_EveryCallIsDistinct(t *testing.T) {
	iss := NewIssuer(newCodec(t, time.Now), time.Hour, nil)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		got, err := iss.Issue(context.Background())
		require.NoError(t, err)
		require.False(t, seen[got.SubjectID], "duplicate subject %s", got.SubjectID)
		seen[got.SubjectID] = true
	}
}

func TestIssue_PinnedID(t *testing.T) {
	iss := NewIssuer(newCodec(t, time.Now), time.Hour, nil, WithIDSource(func() string { return "abc" }))

	got, err := iss.Issue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", got.SubjectID)
}

func TestIssue_WithoutCodecIsConfigurationError(t *testing.T) {
	iss := NewIssuer(nil, time.Hour, nil)

	_, err := iss.Issue(context.Background())
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}
