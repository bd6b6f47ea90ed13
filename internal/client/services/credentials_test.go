package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Perry5596/ShopAI-sub001/internal/client/repositories/credentials"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeIssuer mints credentials valid for ttl from the clock's current time.
type fakeIssuer struct {
	clock *testClock
	ttl   time.Duration
	calls atomic.Int32
	err   error
	gate  chan struct{}
}

func (f *fakeIssuer) IssueAnonymous(ctx context.Context) (credentials.StoredCredential, error) {
	n := f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return credentials.StoredCredential{}, ctx.Err()
		}
	}
	if f.err != nil {
		return credentials.StoredCredential{}, f.err
	}
	return credentials.StoredCredential{
		Token:     fmt.Sprintf("token-%d", n),
		SubjectID: fmt.Sprintf("subject-%d", n),
		ExpiresAt: f.clock.Now().Add(f.ttl),
	}, nil
}

func newManager(t *testing.T, opts ...ManagerOption) (*CredentialManager, *credentials.MemoryRepository, *fakeIssuer, *testClock) {
	t.Helper()
	clock := &testClock{now: epoch}
	repo := credentials.NewMemoryRepository()
	issuer := &fakeIssuer{clock: clock, ttl: 30 * 24 * time.Hour}
	opts = append([]ManagerOption{WithManagerClock(clock.Now)}, opts...)
	return NewCredentialManager(repo, issuer, 24*time.Hour, nil, opts...), repo, issuer, clock
}

func TestStateOf(t *testing.T) {
	exp := epoch.Add(48 * time.Hour)
	cred := &credentials.StoredCredential{ExpiresAt: exp}
	buffer := 24 * time.Hour

	tests := []struct {
		name string
		cred *credentials.StoredCredential
		now  time.Time
		want State
	}{
		{"absent", nil, epoch, StateAbsent},
		{"valid", cred, epoch, StateValid},
		{"just outside buffer", cred, exp.Add(-buffer - time.Second), StateValid},
		{"buffer boundary", cred, exp.Add(-buffer), StateNearExpiry},
		{"near expiry", cred, exp.Add(-12 * time.Hour), StateNearExpiry},
		{"expiry instant", cred, exp, StateExpired},
		{"long expired", cred, exp.Add(time.Hour), StateExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.cred, tt.now, buffer))
		})
	}
}

func TestEnsure_LifecycleScenario(t *testing.T) {
	m, repo, issuer, clock := newManager(t)
	ctx := context.Background()

	stored := credentials.StoredCredential{Token: "stored", SubjectID: "s0", ExpiresAt: epoch.Add(48 * time.Hour)}
	require.NoError(t, repo.Save(ctx, stored))

	got, err := m.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
	assert.Equal(t, int32(0), issuer.calls.Load(), "valid credential needs no network call")

	clock.Set(stored.ExpiresAt.Add(-12 * time.Hour))

	got, err = m.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), issuer.calls.Load())
	assert.Equal(t, "token-1", got.Token)

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, *persisted)

	// the fresh credential is now Valid
	_, err = m.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), issuer.calls.Load())
}

func TestEnsure_AbsentIssuesAndPersists(t *testing.T) {
	m, repo, issuer, _ := newManager(t)
	ctx := context.Background()

	tok, err := m.Credential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.Equal(t, int32(1), issuer.calls.Load())

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "subject-1", persisted.SubjectID)
}

func TestEnsure_ConcurrentCallersShareOneRefresh(t *testing.T) {
	m, _, issuer, _ := newManager(t)
	issuer.gate = make(chan struct{})
	ctx := context.Background()

	const callers = 20
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = m.Credential(ctx)
		}(i)
	}

	require.Eventually(t, func() bool { return issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(issuer.gate)
	wg.Wait()

	assert.Equal(t, int32(1), issuer.calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "token-1", tokens[i])
	}
}

func TestEnsure_FailedRefreshClearsAndSurfaces(t *testing.T) {
	m, repo, issuer, clock := newManager(t)
	ctx := context.Background()

	stored := credentials.StoredCredential{Token: "old", SubjectID: "s0", ExpiresAt: epoch.Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, stored))

	issuer.err = errors.New("network down")
	clock.Set(stored.ExpiresAt.Add(time.Minute))

	_, err := m.Ensure(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network down")

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted, "an expired credential must not linger")

	cur, state, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
	assert.Equal(t, StateAbsent, state)
}

func TestEnsure_IssueTimeout(t *testing.T) {
	m, _, issuer, _ := newManager(t, WithIssueTimeout(10*time.Millisecond))
	issuer.gate = make(chan struct{})
	defer close(issuer.gate)

	_, err := m.Ensure(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnsure_CallerCancelDoesNotAbortSharedRefresh(t *testing.T) {
	m, repo, issuer, _ := newManager(t)
	issuer.gate = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := m.Ensure(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return issuer.calls.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(issuer.gate)
	require.Eventually(t, func() bool {
		c, err := repo.Load(context.Background())
		return err == nil && c != nil
	}, time.Second, time.Millisecond)
}

// corruptRepo fails the first Load as unreadable.
type corruptRepo struct {
	*credentials.MemoryRepository
	once    sync.Once
	cleared atomic.Int32
}

func (r *corruptRepo) Load(ctx context.Context) (*credentials.StoredCredential, error) {
	var corrupt bool
	r.once.Do(func() { corrupt = true })
	if corrupt {
		return nil, fmt.Errorf("%w: test", credentials.ErrCorrupt)
	}
	return r.MemoryRepository.Load(ctx)
}

func (r *corruptRepo) Clear(ctx context.Context) error {
	r.cleared.Add(1)
	return r.MemoryRepository.Clear(ctx)
}

func TestEnsure_CorruptRecordIsReplaced(t *testing.T) {
	clock := &testClock{now: epoch}
	repo := &corruptRepo{MemoryRepository: credentials.NewMemoryRepository()}
	issuer := &fakeIssuer{clock: clock, ttl: 30 * 24 * time.Hour}
	m := NewCredentialManager(repo, issuer, 24*time.Hour, nil, WithManagerClock(clock.Now))

	tok, err := m.Credential(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.Equal(t, int32(1), repo.cleared.Load())
}

func TestCurrent_NeverIssues(t *testing.T) {
	m, repo, issuer, clock := newManager(t)
	ctx := context.Background()

	assert.Empty(t, m.Current(ctx))

	stored := credentials.StoredCredential{Token: "stored", SubjectID: "s0", ExpiresAt: epoch.Add(2 * time.Hour)}
	require.NoError(t, repo.Save(ctx, stored))
	assert.Equal(t, "stored", m.Current(ctx), "near expiry is still usable")

	clock.Set(stored.ExpiresAt)
	assert.Empty(t, m.Current(ctx))
	assert.Equal(t, int32(0), issuer.calls.Load())
}

func TestInvalidate_NextEnsureReissues(t *testing.T) {
	m, _, issuer, _ := newManager(t)
	ctx := context.Background()

	first, err := m.Credential(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Invalidate(ctx))

	second, err := m.Credential(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, int32(2), issuer.calls.Load())
}

func TestOnAccountSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps by default", func(t *testing.T) {
		m, repo, _, _ := newManager(t)
		_, err := m.Ensure(ctx)
		require.NoError(t, err)

		require.NoError(t, m.OnAccountSignIn(ctx))
		c, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("clears when configured", func(t *testing.T) {
		m, repo, _, _ := newManager(t, WithClearOnSignIn(true))
		_, err := m.Ensure(ctx)
		require.NoError(t, err)

		require.NoError(t, m.OnAccountSignIn(ctx))
		c, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestForget(t *testing.T) {
	m, repo, _, _ := newManager(t)
	ctx := context.Background()
	_, err := m.Ensure(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Forget(ctx))
	c, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "absent", StateAbsent.String())
	assert.Equal(t, "valid", StateValid.String())
	assert.Equal(t, "near_expiry", StateNearExpiry.String())
	assert.Equal(t, "expired", StateExpired.String())
	assert.Equal(t, "State(9)", State(9).String())
}
