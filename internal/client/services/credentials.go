// Package services holds the device-side application services.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Perry5596/ShopAI-sub001/internal/client/repositories/credentials"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
)

const (
	DefaultRefreshBuffer = 24 * time.Hour
	DefaultIssueTimeout  = 10 * time.Second
)

// Issuer obtains a brand-new anonymous credential from the server.
type Issuer interface {
	IssueAnonymous(ctx context.Context) (credentials.StoredCredential, error)
}

// State classifies the stored credential at a point in time.
type State int

const (
	StateAbsent State = iota
	StateValid
	StateNearExpiry
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateValid:
		return "valid"
	case StateNearExpiry:
		return "near_expiry"
	case StateExpired:
		return "expired"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StateOf reports where c stands at now. A credential within buffer of its
// expiry is NearExpiry and is refreshed like an expired one.
func StateOf(c *credentials.StoredCredential, now time.Time, buffer time.Duration) State {
	switch {
	case c == nil:
		return StateAbsent
	case !now.Before(c.ExpiresAt):
		return StateExpired
	case !now.Add(buffer).Before(c.ExpiresAt):
		return StateNearExpiry
	default:
		return StateValid
	}
}

// CredentialManager keeps a usable anonymous credential on the device.
//
// Concurrent callers that find the credential due for refresh share a single
// issuance call. A failed refresh clears the store, so an expired credential
// is never handed out.
type CredentialManager struct {
	repo          credentials.Repository
	issuer        Issuer
	refreshBuffer time.Duration
	issueTimeout  time.Duration
	clearOnSignIn bool
	now           timex.Clock
	logger        logging.Logger
	group         singleflight.Group
}

type ManagerOption func(*CredentialManager)

func WithManagerClock(c timex.Clock) ManagerOption {
	return func(m *CredentialManager) { m.now = c.OrNow() }
}

func WithIssueTimeout(d time.Duration) ManagerOption {
	return func(m *CredentialManager) {
		if d > 0 {
			m.issueTimeout = d
		}
	}
}

// WithClearOnSignIn makes OnAccountSignIn drop the guest credential instead
// of keeping it for a later return to guest mode.
func WithClearOnSignIn(clear bool) ManagerOption {
	return func(m *CredentialManager) { m.clearOnSignIn = clear }
}

func NewCredentialManager(repo credentials.Repository, issuer Issuer, refreshBuffer time.Duration, l logging.Logger, opts ...ManagerOption) *CredentialManager {
	if refreshBuffer < 0 {
		refreshBuffer = DefaultRefreshBuffer
	}
	if l == nil {
		l = logging.Nop{}
	}
	m := &CredentialManager{
		repo:          repo,
		issuer:        issuer,
		refreshBuffer: refreshBuffer,
		issueTimeout:  DefaultIssueTimeout,
		now:           time.Now,
		logger:        l.With("module", "credential_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ensure returns a Valid credential, issuing and persisting a new one when
// the stored credential is absent, near expiry or expired.
func (m *CredentialManager) Ensure(ctx context.Context) (credentials.StoredCredential, error) {
	cur, err := m.load(ctx)
	if err != nil {
		return credentials.StoredCredential{}, err
	}
	if StateOf(cur, m.now(), m.refreshBuffer) == StateValid {
		return *cur, nil
	}

	ch := m.group.DoChan("refresh", func() (any, error) {
		return m.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return credentials.StoredCredential{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return credentials.StoredCredential{}, res.Err
		}
		return res.Val.(credentials.StoredCredential), nil
	}
}

// Credential returns the token of a Valid credential.
func (m *CredentialManager) Credential(ctx context.Context) (string, error) {
	c, err := m.Ensure(ctx)
	if err != nil {
		return "", err
	}
	return c.Token, nil
}

// Current returns the stored token while it has not expired, without any
// network call. Errors read as "no credential".
func (m *CredentialManager) Current(ctx context.Context) string {
	cur, err := m.load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "failed to read stored credential", "error", err)
		return ""
	}
	switch StateOf(cur, m.now(), m.refreshBuffer) {
	case StateValid, StateNearExpiry:
		return cur.Token
	default:
		return ""
	}
}

// Status reports the stored credential and its state without any network call.
func (m *CredentialManager) Status(ctx context.Context) (*credentials.StoredCredential, State, error) {
	cur, err := m.load(ctx)
	if err != nil {
		return nil, StateAbsent, err
	}
	return cur, StateOf(cur, m.now(), m.refreshBuffer), nil
}

// Invalidate drops a credential the server rejected. The next Ensure issues
// a fresh one.
func (m *CredentialManager) Invalidate(ctx context.Context) error {
	m.logger.Warn(ctx, "stored credential rejected, discarding")
	return m.repo.Clear(ctx)
}

// OnAccountSignIn applies the sign-in policy to the guest credential. The
// guest quota is not carried over to the account either way.
func (m *CredentialManager) OnAccountSignIn(ctx context.Context) error {
	if !m.clearOnSignIn {
		m.logger.Debug(ctx, "account sign-in, keeping guest credential")
		return nil
	}
	m.logger.Info(ctx, "account sign-in, clearing guest credential")
	return m.repo.Clear(ctx)
}

// Forget removes the stored credential.
func (m *CredentialManager) Forget(ctx context.Context) error {
	return m.repo.Clear(ctx)
}

// load treats an unreadable record as absent after clearing it.
func (m *CredentialManager) load(ctx context.Context) (*credentials.StoredCredential, error) {
	cur, err := m.repo.Load(ctx)
	if errors.Is(err, credentials.ErrCorrupt) {
		m.logger.Warn(ctx, "stored credential unreadable, discarding", "error", err)
		if cerr := m.repo.Clear(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	return cur, nil
}

func (m *CredentialManager) refresh(ctx context.Context) (credentials.StoredCredential, error) {
	// a caller that raced us may already have stored a fresh one
	cur, err := m.load(ctx)
	if err != nil {
		return credentials.StoredCredential{}, err
	}
	state := StateOf(cur, m.now(), m.refreshBuffer)
	if state == StateValid {
		return *cur, nil
	}

	ictx, cancel := context.WithTimeout(ctx, m.issueTimeout)
	defer cancel()

	issued, err := m.issuer.IssueAnonymous(ictx)
	if err != nil {
		if cerr := m.repo.Clear(ctx); cerr != nil {
			m.logger.Error(ctx, "failed to clear credential after failed refresh", "error", cerr)
		}
		return credentials.StoredCredential{}, fmt.Errorf("issue anonymous credential: %w", err)
	}

	if err := m.repo.Save(ctx, issued); err != nil {
		return credentials.StoredCredential{}, fmt.Errorf("save credential: %w", err)
	}

	m.logger.Info(ctx, "anonymous credential refreshed",
		"previous_state", state.String(), "subject_id", issued.SubjectID, "expires_at", issued.ExpiresAt)
	return issued, nil
}
