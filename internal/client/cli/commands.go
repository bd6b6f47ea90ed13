package cli

import (
	"io"
	"os"
	"time"

	urfave "github.com/urfave/cli/v2"
	"google.golang.org/grpc"

	"github.com/Perry5596/ShopAI-sub001/internal/client/client"
	"github.com/Perry5596/ShopAI-sub001/internal/client/config"
)

// Runner builds the shopai-guest command line. DialOptions are passed to the
// gRPC client, tests use them to reach an in-process server.
type Runner struct {
	Stdout      io.Writer
	DialOptions []grpc.DialOption
}

var globalFlags = []urfave.Flag{
	&urfave.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "JSON config file"},
	&urfave.StringFlag{Name: "server", Aliases: []string{"a"}, Usage: "identity server gRPC address"},
	&urfave.StringFlag{Name: "db", Usage: "local credential database file"},
	&urfave.StringFlag{Name: "key", Usage: "sealing key file"},
	&urfave.DurationFlag{Name: "refresh-buffer", Usage: "refresh a credential this long before it expires"},
	&urfave.DurationFlag{Name: "issue-timeout", Usage: "timeout for issuing a credential"},
	&urfave.BoolFlag{Name: "clear-on-sign-in", Usage: "drop the guest credential when an account session is used"},
	&urfave.StringFlag{Name: "account-token", EnvVars: []string{"SHOPAI_ACCOUNT_TOKEN"}, Usage: "account session token to present"},
	&urfave.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	&urfave.BoolFlag{Name: "json", Usage: "always print JSON"},
}

func (r *Runner) App() *urfave.App {
	out := r.Stdout
	if out == nil {
		out = os.Stdout
	}

	return &urfave.App{
		Name:   "shopai-guest",
		Usage:  "keep this device's anonymous ShopAI credential fresh",
		Writer: out,
		Flags:  globalFlags,
		Commands: []*urfave.Command{
			{
				Name:   "credential",
				Usage:  "ensure a valid anonymous credential and print it",
				Action: r.action(out, credentialCmd),
			},
			{
				Name:   "status",
				Usage:  "show the stored credential and the server's quota",
				Action: r.action(out, statusCmd),
			},
			{
				Name:   "authorize",
				Usage:  "consume one unit of quota",
				Action: r.action(out, authorizeCmd),
			},
			{
				Name:   "forget",
				Usage:  "delete the stored credential",
				Action: r.action(out, forgetCmd),
			},
		},
	}
}

type commandFunc func(c *urfave.Context, a *App, p *printer) error

func (r *Runner) action(out io.Writer, fn commandFunc) urfave.ActionFunc {
	return func(c *urfave.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		a, err := NewApp(c.Context, cfg, r.DialOptions...)
		if err != nil {
			return err
		}
		defer a.Close()

		a.logger.Debug(c.Context, "running command", "command", c.Command.Name, "server", cfg.ServerEndpointAddr)

		if tok := c.String("account-token"); tok != "" {
			a.client.SetAccountToken(tok)
			if err := a.manager.OnAccountSignIn(c.Context); err != nil {
				return err
			}
		}

		return fn(c, a, newPrinter(out, c.Bool("json")))
	}
}

// loadConfig applies explicitly set flags over file and environment values.
func loadConfig(c *urfave.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("server") {
		cfg.ServerEndpointAddr = c.String("server")
	}
	if c.IsSet("db") {
		cfg.DatabasePath = c.String("db")
	}
	if c.IsSet("key") {
		cfg.KeyPath = c.String("key")
	}
	if c.IsSet("refresh-buffer") {
		cfg.RefreshBuffer = c.Duration("refresh-buffer")
	}
	if c.IsSet("issue-timeout") {
		cfg.IssueTimeout = c.Duration("issue-timeout")
	}
	if c.IsSet("clear-on-sign-in") {
		cfg.ClearOnSignIn = c.Bool("clear-on-sign-in")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

type credentialOutput struct {
	Credential string    `json:"credential"`
	SubjectID  string    `json:"subjectId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func credentialCmd(c *urfave.Context, a *App, p *printer) error {
	cred, err := a.manager.Ensure(c.Context)
	if err != nil {
		return err
	}
	return p.print(credentialOutput{Credential: cred.Token, SubjectID: cred.SubjectID, ExpiresAt: cred.ExpiresAt},
		field{"subject", cred.SubjectID},
		field{"expires", cred.ExpiresAt},
		field{"credential", cred.Token},
	)
}

type quotaOutput struct {
	Subject   string    `json:"subject"`
	Kind      string    `json:"kind"`
	Allowed   bool      `json:"allowed"`
	Limit     int64     `json:"limit"`
	Used      int64     `json:"used"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
}

func toQuotaOutput(q *client.Quota) *quotaOutput {
	return &quotaOutput{
		Subject:   q.Subject,
		Kind:      q.Kind,
		Allowed:   q.Allowed,
		Limit:     q.Limit,
		Used:      q.Used,
		Remaining: q.Remaining,
		ResetAt:   q.ResetAt,
	}
}

type statusOutput struct {
	State     string       `json:"state"`
	SubjectID string       `json:"subjectId,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	Quota     *quotaOutput `json:"quota"`
}

func statusCmd(c *urfave.Context, a *App, p *printer) error {
	cur, state, err := a.manager.Status(c.Context)
	if err != nil {
		return err
	}

	q, err := a.client.GetQuota(c.Context)
	if err != nil {
		return err
	}

	// the quota call may have refreshed the credential
	if refreshed, newState, err := a.manager.Status(c.Context); err == nil && newState != state {
		cur, state = refreshed, newState
	}

	out := statusOutput{State: state.String(), Quota: toQuotaOutput(q)}
	fields := []field{{"state", out.State}}
	if cur != nil {
		out.SubjectID = cur.SubjectID
		out.ExpiresAt = &cur.ExpiresAt
		fields = append(fields, field{"subject", cur.SubjectID}, field{"expires", cur.ExpiresAt})
	}
	fields = append(fields,
		field{"quota subject", q.Subject},
		field{"used", q.Used},
		field{"remaining", q.Remaining},
		field{"limit", q.Limit},
		field{"resets", q.ResetAt},
	)
	return p.print(out, fields...)
}

func authorizeCmd(c *urfave.Context, a *App, p *printer) error {
	q, err := a.client.Authorize(c.Context)
	if err != nil {
		return err
	}
	return p.print(toQuotaOutput(q),
		field{"subject", q.Subject},
		field{"remaining", q.Remaining},
		field{"limit", q.Limit},
		field{"resets", q.ResetAt},
	)
}

func forgetCmd(c *urfave.Context, a *App, p *printer) error {
	if err := a.manager.Forget(c.Context); err != nil {
		return err
	}
	return p.print(map[string]bool{"forgotten": true}, field{"credential", "forgotten"})
}
