package grpc

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/rpc"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func (s *GRPCServer) IssueAnonymous(ctx context.Context, _ *rpc.IssueAnonymousRequest) (*rpc.IssueAnonymousResponse, error) {
	issued, err := s.issuer.Issue(ctx)
	if err != nil {
		s.logger.Error(ctx, "anonymous issuance failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Anonymous identity issued", "subject_id", issued.SubjectID)
	return &rpc.IssueAnonymousResponse{
		Credential: issued.Credential,
		SubjectId:  issued.SubjectID,
		ExpiresAt:  timestamppb.New(issued.ExpiresAt),
	}, nil
}

func (s *GRPCServer) GetQuota(ctx context.Context, _ *rpc.GetQuotaRequest) (*rpc.QuotaResponse, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrAuthenticationRequired)
	}

	d, err := s.ledger.Status(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "quota status failed", "subject", id.Subject(), "error", err)
		return nil, toStatus(err)
	}
	return quotaResponse(id, d), nil
}

func (s *GRPCServer) Authorize(ctx context.Context, _ *rpc.AuthorizeRequest) (*rpc.QuotaResponse, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrAuthenticationRequired)
	}

	d, err := s.ledger.Authorize(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return quotaResponse(id, d), nil
}

func quotaResponse(id identity.Identity, d quota.Decision) *rpc.QuotaResponse {
	return &rpc.QuotaResponse{
		Subject:   d.Subject,
		Kind:      id.Kind.String(),
		Allowed:   d.Allowed,
		Limit:     d.Limit,
		Used:      d.Used,
		Remaining: d.Remaining,
		ResetAt:   timestamppb.New(d.ResetAt),
		FailOpen:  d.FailOpen,
	}
}

// toStatus maps domain errors to gRPC statuses with an ErrorInfo reason the
// client can switch on.
func toStatus(err error) error {
	var exceeded *quota.ExceededError
	switch {
	case errors.As(err, &exceeded):
		d := exceeded.Decision
		return rpc.Error(codes.ResourceExhausted, "quota exceeded", common.ReasonQuotaExceeded, map[string]string{
			"limit":     strconv.FormatInt(d.Limit, 10),
			"remaining": strconv.FormatInt(d.Remaining, 10),
			"resetAt":   d.ResetAt.Format(time.RFC3339),
		})
	case errors.Is(err, common.ErrInvalidAnonymousCredential):
		return rpc.Error(codes.Unauthenticated, "invalid anonymous credential", common.ReasonInvalidAnonymousCredential, nil)
	case errors.Is(err, common.ErrAuthenticationRequired):
		return rpc.Error(codes.Unauthenticated, "authentication required", common.ReasonAuthenticationRequired, nil)
	case errors.Is(err, common.ErrConfiguration):
		return rpc.Error(codes.Internal, "server misconfigured", common.ReasonConfiguration, nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
