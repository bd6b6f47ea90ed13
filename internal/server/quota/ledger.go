// Package quota meters usage per identity with a fixed-window counter.
//
// A window opens on the first consumption for a subject and lasts Policy.Window.
// Once it has elapsed the next consumption starts a fresh window, so across a
// boundary a caller may spend up to twice the limit in quick succession.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/repositories/quotas"
	"github.com/Perry5596/ShopAI-sub001/internal/timex"
)

var ErrInvalidPolicy = errors.New("invalid quota policy")

// Policy is "at most Limit consumptions per Window".
type Policy struct {
	Limit  int64
	Window time.Duration
}

func (p Policy) validate() error {
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPolicy, p.Limit)
	}
	if p.Window < time.Second {
		return fmt.Errorf("%w: window must be at least one second, got %s", ErrInvalidPolicy, p.Window)
	}
	return nil
}

func (p Policy) windowSecs() int64 {
	return int64(p.Window / time.Second)
}

// Decision is the outcome of a consume or peek.
type Decision struct {
	Subject   string
	Allowed   bool
	Limit     int64
	Used      int64
	Remaining int64
	ResetAt   time.Time
	// FailOpen marks a decision made without the store.
	FailOpen bool
}

// ExceededError is returned by Authorize when the caller has no units left.
type ExceededError struct {
	Decision Decision
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: limit %d, resets at %s",
		e.Decision.Subject, e.Decision.Limit, e.Decision.ResetAt.Format(time.RFC3339))
}

func (e *ExceededError) Unwrap() error { return common.ErrQuotaExceeded }

type Ledger struct {
	repo    quotas.Repository
	guest   Policy
	account Policy
	now     timex.Clock
	logger  logging.Logger
}

type Option func(*Ledger)

func WithClock(c timex.Clock) Option {
	return func(l *Ledger) { l.now = c }
}

// NewLedger returns a Ledger that applies guest to anonymous identities and
// account to account holders.
func NewLedger(repo quotas.Repository, guest, account Policy, l logging.Logger, opts ...Option) (*Ledger, error) {
	if err := guest.validate(); err != nil {
		return nil, fmt.Errorf("guest policy: %w", err)
	}
	if err := account.validate(); err != nil {
		return nil, fmt.Errorf("account policy: %w", err)
	}
	if l == nil {
		l = logging.Nop{}
	}

	ledger := &Ledger{
		repo:    repo,
		guest:   guest,
		account: account,
		logger:  l.With("module", "quota"),
	}
	for _, opt := range opts {
		opt(ledger)
	}
	ledger.now = ledger.now.OrNow()
	return ledger, nil
}

// PolicyFor returns the policy applied to identities of kind k.
func (l *Ledger) PolicyFor(k identity.Kind) Policy {
	if k == identity.Account {
		return l.account
	}
	return l.guest
}

// Consume takes one unit for subject. A refusal is a normal Decision with
// Allowed=false, not an error. If the store fails the unit is granted anyway
// (FailOpen) and the failure is logged; only a cancelled ctx is returned.
func (l *Ledger) Consume(ctx context.Context, subject string, p Policy) (Decision, error) {
	if err := p.validate(); err != nil {
		return Decision{}, err
	}
	now := l.now().Unix()

	rec, granted, err := l.repo.Consume(ctx, subject, p.Limit, p.windowSecs(), now)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Decision{}, ctxErr
		}
		l.logger.Error(ctx, "quota store unavailable, failing open", "subject", subject, "error", err)
		return Decision{
			Subject:   subject,
			Allowed:   true,
			Limit:     p.Limit,
			Remaining: p.Limit,
			ResetAt:   time.Unix(now+p.windowSecs(), 0).UTC(),
			FailOpen:  true,
		}, nil
	}

	d := decisionFrom(subject, rec, p)
	d.Allowed = granted
	if !granted {
		d.Remaining = 0
	}
	return d, nil
}

// Peek reports what Consume would see without taking a unit. Store errors are
// returned as is: a status display has nothing useful to show on failure.
func (l *Ledger) Peek(ctx context.Context, subject string, p Policy) (Decision, error) {
	if err := p.validate(); err != nil {
		return Decision{}, err
	}
	now := l.now().Unix()

	rec, err := l.repo.Get(ctx, subject)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return Decision{}, fmt.Errorf("peek %s: %w", subject, err)
	}
	if rec == nil || now-rec.WindowStart >= p.windowSecs() {
		rec = &quotas.Record{Subject: subject, WindowStart: now}
	}

	d := decisionFrom(subject, *rec, p)
	d.Allowed = d.Remaining > 0
	return d, nil
}

// Authorize consumes one unit for id under its kind's policy. A refusal is
// returned as *ExceededError alongside the Decision.
func (l *Ledger) Authorize(ctx context.Context, id identity.Identity) (Decision, error) {
	d, err := l.Consume(ctx, id.Subject(), l.PolicyFor(id.Kind))
	if err != nil {
		return d, err
	}
	if !d.Allowed {
		return d, &ExceededError{Decision: d}
	}
	return d, nil
}

// Status peeks at id's quota under its kind's policy.
func (l *Ledger) Status(ctx context.Context, id identity.Identity) (Decision, error) {
	return l.Peek(ctx, id.Subject(), l.PolicyFor(id.Kind))
}

func decisionFrom(subject string, rec quotas.Record, p Policy) Decision {
	used := rec.Count
	remaining := p.Limit - used
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Subject:   subject,
		Limit:     p.Limit,
		Used:      used,
		Remaining: remaining,
		ResetAt:   time.Unix(rec.WindowStart+p.windowSecs(), 0).UTC(),
	}
}
