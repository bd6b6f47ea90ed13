package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/rpc"
)

/*************
 * Fake identity server
 *************/

type fakeServer struct {
	rpc.UnimplementedIdentityServer

	mu         sync.Mutex
	valid      string
	issued     int
	quotaCalls int
	lastMD     metadata.MD
	issueErr   error
	noExpiry   bool
}

func (f *fakeServer) IssueAnonymous(ctx context.Context, _ *rpc.IssueAnonymousRequest) (*rpc.IssueAnonymousResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.issued++
	f.valid = fmt.Sprintf("cred-%d", f.issued)
	resp := &rpc.IssueAnonymousResponse{
		Credential: f.valid,
		SubjectId:  fmt.Sprintf("subject-%d", f.issued),
		ExpiresAt:  timestamppb.New(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)),
	}
	if f.noExpiry {
		resp.ExpiresAt = nil
	}
	return resp, nil
}

func (f *fakeServer) GetQuota(ctx context.Context, _ *rpc.GetQuotaRequest) (*rpc.QuotaResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotaCalls++
	f.lastMD = md

	if len(md.Get(common.AuthorizationHeaderName)) > 0 {
		return quotaResponse("account:u1", "account"), nil
	}
	if tok := md.Get(common.AnonymousTokenHeaderName); len(tok) == 0 || tok[0] != f.valid || f.valid == "" {
		return nil, rpc.Error(codes.Unauthenticated, "invalid anonymous credential", common.ReasonInvalidAnonymousCredential, nil)
	}
	return quotaResponse("anon:subject", "anonymous"), nil
}

func (f *fakeServer) Authorize(ctx context.Context, _ *rpc.AuthorizeRequest) (*rpc.QuotaResponse, error) {
	return nil, rpc.Error(codes.ResourceExhausted, "quota exceeded", common.ReasonQuotaExceeded,
		map[string]string{"limit": "14", "remaining": "0", "resetAt": "2030-01-08T00:00:00Z"})
}

func quotaResponse(subject, kind string) *rpc.QuotaResponse {
	return &rpc.QuotaResponse{
		Subject:   subject,
		Kind:      kind,
		Allowed:   true,
		Limit:     14,
		Used:      3,
		Remaining: 11,
		ResetAt:   timestamppb.New(time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC)),
	}
}

func newTestClient(t *testing.T, f *fakeServer) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterIdentityServer(srv, f)
	go func() { _ = srv.Serve(lis) }()

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Stop()
	})
	return c
}

/*************
 * Fake credential source
 *************/

// issuingSource mimics the credential manager: it issues on demand and
// forgets on Invalidate.
type issuingSource struct {
	c           *GRPCClient
	current     string
	fixed       bool
	invalidated int
}

func (s *issuingSource) Credential(ctx context.Context) (string, error) {
	if s.current == "" && !s.fixed {
		cred, err := s.c.IssueAnonymous(ctx)
		if err != nil {
			return "", err
		}
		s.current = cred.Token
	}
	return s.current, nil
}

func (s *issuingSource) Current(ctx context.Context) string {
	return s.current
}

func (s *issuingSource) Invalidate(ctx context.Context) error {
	s.invalidated++
	if !s.fixed {
		s.current = ""
	}
	return nil
}

func TestIssueAnonymous_ParsesResponse(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)

	cred, err := c.IssueAnonymous(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "cred-1", cred.Token)
	assert.Equal(t, "subject-1", cred.SubjectID)
	assert.True(t, time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Equal(cred.ExpiresAt))
}

func TestIssueAnonymous_RejectsIncompleteResponse(t *testing.T) {
	f := &fakeServer{noExpiry: true}
	c := newTestClient(t, f)

	_, err := c.IssueAnonymous(context.Background())
	assert.ErrorContains(t, err, "incomplete issuance response")
}

func TestIssueAnonymous_MapsError(t *testing.T) {
	f := &fakeServer{issueErr: status.Error(codes.Unavailable, "down")}
	c := newTestClient(t, f)

	_, err := c.IssueAnonymous(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGetQuota_AttachesAnonymousCredential(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	src := &issuingSource{c: c}
	c.UseCredentials(src)

	q, err := c.GetQuota(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "anon:subject", q.Subject)
	assert.Equal(t, int64(11), q.Remaining)
	assert.True(t, time.Date(2030, 1, 8, 0, 0, 0, 0, time.UTC).Equal(q.ResetAt))
	assert.Equal(t, []string{"cred-1"}, f.lastMD.Get(common.AnonymousTokenHeaderName))
	assert.Equal(t, 0, src.invalidated)
}

func TestInterceptor_ReissuesOnRejectedCredentialAndRetries(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	src := &issuingSource{c: c, current: "stale"}
	c.UseCredentials(src)

	q, err := c.GetQuota(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "anon:subject", q.Subject)

	assert.Equal(t, 1, src.invalidated)
	assert.Equal(t, 1, f.issued)
	assert.Equal(t, 2, f.quotaCalls)
}

func TestInterceptor_RetriesOnlyOnce(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	src := &issuingSource{c: c, current: "always-bad", fixed: true}
	c.UseCredentials(src)

	_, err := c.GetQuota(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, src.invalidated)
	assert.Equal(t, 2, f.quotaCalls)
}

func TestInterceptor_AccountSessionCarriesStoredGuestCredential(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	c.UseCredentials(&issuingSource{c: c, current: "guest"})
	c.SetAccountToken("session-jwt")

	q, err := c.GetQuota(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "account", q.Kind)
	assert.Equal(t, []string{"Bearer session-jwt"}, f.lastMD.Get(common.AuthorizationHeaderName))
	assert.Equal(t, []string{"guest"}, f.lastMD.Get(common.AnonymousTokenHeaderName))
}

func TestInterceptor_AccountSessionNeverIssues(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)
	c.UseCredentials(&issuingSource{c: c})
	c.SetAccountToken("session-jwt")

	_, err := c.GetQuota(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, f.issued)
	assert.Empty(t, f.lastMD.Get(common.AnonymousTokenHeaderName))
}

func TestInterceptor_NoSource(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)

	_, err := c.GetQuota(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, f.issued)
}

func TestInterceptor_SourceFailureWithoutAccount(t *testing.T) {
	f := &fakeServer{issueErr: status.Error(codes.Internal, "boom")}
	c := newTestClient(t, f)
	c.UseCredentials(&issuingSource{c: c})

	_, err := c.GetQuota(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, f.quotaCalls, "no call is made without any credential")
}

func TestAuthorize_QuotaExceeded(t *testing.T) {
	f := &fakeServer{}
	c := newTestClient(t, f)

	_, err := c.Authorize(context.Background())
	assert.ErrorIs(t, err, common.ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "2030-01-08T00:00:00Z")
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "x"), ErrUnauthorized},
		{"permission denied", status.Error(codes.PermissionDenied, "x"), ErrUnauthorized},
		{"exhausted", status.Error(codes.ResourceExhausted, "x"), common.ErrQuotaExceeded},
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, c.mapError(tt.in), tt.want)
		})
	}

	assert.NoError(t, c.mapError(nil))

	other := c.mapError(status.Error(codes.Internal, "boom"))
	assert.Contains(t, other.Error(), "rpc error")
	assert.False(t, errors.Is(other, ErrUnavailable))
}
