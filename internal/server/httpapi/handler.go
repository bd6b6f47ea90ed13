package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
)

type issueResponse struct {
	Credential string `json:"credential"`
	SubjectID  string `json:"subjectId"`
	ExpiresAt  string `json:"expiresAt"`
}

type quotaResponse struct {
	Subject   string `json:"subject"`
	Kind      string `json:"kind"`
	Allowed   bool   `json:"allowed"`
	Limit     int64  `json:"limit"`
	Used      int64  `json:"used"`
	Remaining int64  `json:"remaining"`
	ResetAt   string `json:"resetAt"`
	FailOpen  bool   `json:"failOpen,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason,omitempty"`
	Remaining *int64 `json:"remaining,omitempty"`
	ResetAt   string `json:"resetAt,omitempty"`
	Limit     int64  `json:"limit,omitempty"`
}

// handleIssueAnonymous mints a guest identity. The body is ignored.
func (srv *Server) handleIssueAnonymous(w http.ResponseWriter, r *http.Request) {
	issued, err := srv.issuer.Issue(r.Context())
	if err != nil {
		srv.log.Error(r.Context(), "anonymous issuance failed", "error", err)
		srv.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, issueResponse{
		Credential: issued.Credential,
		SubjectID:  issued.SubjectID,
		ExpiresAt:  issued.ExpiresAt.Format(time.RFC3339),
	})
}

func (srv *Server) handleQuotaStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	d, err := srv.ledger.Status(r.Context(), id)
	if err != nil {
		srv.log.Error(r.Context(), "quota status failed", "subject", id.Subject(), "error", err)
		srv.writeError(w, r, err)
		return
	}
	setRateLimitHeaders(w, d)
	writeJSON(w, http.StatusOK, toQuotaResponse(id, d))
}

// handleConsume reports the decision RequireQuota already made.
func (srv *Server) handleConsume(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())
	d, _ := DecisionFromContext(r.Context())
	writeJSON(w, http.StatusOK, toQuotaResponse(id, d))
}

func toQuotaResponse(id identity.Identity, d quota.Decision) quotaResponse {
	return quotaResponse{
		Subject:   d.Subject,
		Kind:      id.Kind.String(),
		Allowed:   d.Allowed,
		Limit:     d.Limit,
		Used:      d.Used,
		Remaining: d.Remaining,
		ResetAt:   d.ResetAt.Format(time.RFC3339),
		FailOpen:  d.FailOpen,
	}
}

func (srv *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var exceeded *quota.ExceededError
	switch {
	case errors.As(err, &exceeded):
		d := exceeded.Decision
		remaining := d.Remaining
		retry := int64(math.Ceil(time.Until(d.ResetAt).Seconds()))
		if retry < 0 {
			retry = 0
		}
		w.Header().Set("Retry-After", strconv.FormatInt(retry, 10))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:     "quota_exceeded",
			Remaining: &remaining,
			ResetAt:   d.ResetAt.Format(time.RFC3339),
			Limit:     d.Limit,
		})
	case errors.Is(err, common.ErrInvalidAnonymousCredential):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:  "invalid_anonymous_credential",
			Reason: common.ReasonInvalidAnonymousCredential,
		})
	case errors.Is(err, common.ErrAuthenticationRequired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:  "authentication_required",
			Reason: common.ReasonAuthenticationRequired,
		})
	case errors.Is(err, common.ErrConfiguration):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "configuration_error"})
	case errors.Is(err, context.Canceled):
		// client went away, nothing to answer
	default:
		srv.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
