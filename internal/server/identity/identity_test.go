package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject_PrefixesAreDisjoint(t *testing.T) {
	acct := NewAccount("abc")
	anon := NewAnonymous("abc")

	assert.Equal(t, "account:abc", acct.Subject())
	assert.Equal(t, "anon:abc", anon.Subject())
	assert.NotEqual(t, acct.Subject(), anon.Subject())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "account", Account.String())
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), NewAnonymous("g1"))
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, NewAnonymous("g1"), got)
}
