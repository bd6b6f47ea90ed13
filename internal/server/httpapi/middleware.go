package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
)

const (
	headerLimit     = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
	headerReset     = "X-RateLimit-Reset"
)

type ctxDecisionKey struct{}

// DecisionFromContext returns the quota decision RequireQuota made for this request.
func DecisionFromContext(ctx context.Context) (quota.Decision, bool) {
	d, ok := ctx.Value(ctxDecisionKey{}).(quota.Decision)
	return d, ok
}

// Authenticate resolves the caller and stores the Identity in the request
// context. Requests without a usable credential get a 401.
func (srv *Server) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := srv.resolver.Resolve(r.Context(), credentialsFromRequest(r))
		if err != nil {
			srv.log.Info(r.Context(), "caller rejected", "path", r.URL.Path, "error", err)
			srv.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(identity.WithIdentity(r.Context(), id)))
	})
}

// RequireQuota consumes one unit for the authenticated caller before the
// wrapped handler runs. It must sit behind Authenticate.
func (srv *Server) RequireQuota(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.FromContext(r.Context())
		if !ok {
			srv.writeError(w, r, common.ErrAuthenticationRequired)
			return
		}

		d, err := srv.ledger.Authorize(r.Context(), id)
		var exceeded *quota.ExceededError
		if err != nil && !errors.As(err, &exceeded) {
			srv.writeError(w, r, err)
			return
		}
		setRateLimitHeaders(w, d)
		if exceeded != nil {
			srv.writeError(w, r, exceeded)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxDecisionKey{}, d)))
	})
}

func setRateLimitHeaders(w http.ResponseWriter, d quota.Decision) {
	h := w.Header()
	h.Set(headerLimit, strconv.FormatInt(d.Limit, 10))
	h.Set(headerRemaining, strconv.FormatInt(d.Remaining, 10))
	h.Set(headerReset, strconv.FormatInt(d.ResetAt.Unix(), 10))
}
