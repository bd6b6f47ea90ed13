package client

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Perry5596/ShopAI-sub001/internal/client/repositories/credentials"
	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/rpc"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.IdentityClient

	mu           sync.RWMutex
	source       CredentialSource
	accountToken string
}

// NewGRPCClient dials endpointURL. Extra dial options are appended after the
// defaults, which lets tests swap the transport.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.credentialInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = rpc.NewIdentityClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// UseCredentials sets where anonymous credentials come from. Without a source
// only the account token, if any, is sent.
func (c *GRPCClient) UseCredentials(src CredentialSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.source = src
}

// SetAccountToken attaches an account session to later calls. An empty token
// removes it.
func (c *GRPCClient) SetAccountToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accountToken = token
}

func (c *GRPCClient) credentials() (CredentialSource, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source, c.accountToken
}

func withCredentials(ctx context.Context, account, anonymous string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AuthorizationHeaderName)
	md.Delete(common.AnonymousTokenHeaderName)
	if account != "" {
		md.Set(common.AuthorizationHeaderName, "Bearer "+account)
	}
	if anonymous != "" {
		md.Set(common.AnonymousTokenHeaderName, anonymous)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) credentialInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	// issuance is the bootstrap call and carries nothing
	if method == rpc.Identity_IssueAnonymous_FullMethodName {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	src, account := c.credentials()
	if src == nil {
		return invoker(withCredentials(ctx, account, ""), method, req, reply, cc, opts...)
	}

	// with an account session the guest credential only rides along as a
	// fallback and is never minted for it
	if account != "" {
		return invoker(withCredentials(ctx, account, src.Current(ctx)), method, req, reply, cc, opts...)
	}

	anonymous, err := src.Credential(ctx)
	if err != nil {
		return err
	}

	err = invoker(withCredentials(ctx, "", anonymous), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.Unauthenticated || rpc.Reason(err) != common.ReasonInvalidAnonymousCredential {
		return err
	}

	// the stored credential was rejected: replace it and try once more
	if ierr := src.Invalidate(ctx); ierr != nil {
		return ierr
	}
	if anonymous, err = src.Credential(ctx); err != nil {
		return err
	}
	return invoker(withCredentials(ctx, "", anonymous), method, req, reply, cc, opts...)
}

func (c *GRPCClient) IssueAnonymous(ctx context.Context) (credentials.StoredCredential, error) {
	resp, err := c.client.IssueAnonymous(ctx, &rpc.IssueAnonymousRequest{})
	if err != nil {
		return credentials.StoredCredential{}, c.mapError(err)
	}

	if resp.GetCredential() == "" || resp.GetSubjectId() == "" || resp.GetExpiresAt() == nil {
		return credentials.StoredCredential{}, fmt.Errorf("incomplete issuance response")
	}
	if err := resp.GetExpiresAt().CheckValid(); err != nil {
		return credentials.StoredCredential{}, fmt.Errorf("bad expiresAt: %w", err)
	}

	return credentials.StoredCredential{
		Token:     resp.Credential,
		SubjectID: resp.GetSubjectId(),
		ExpiresAt: resp.GetExpiresAt().AsTime(),
	}, nil
}

func (c *GRPCClient) GetQuota(ctx context.Context) (*Quota, error) {
	resp, err := c.client.GetQuota(ctx, &rpc.GetQuotaRequest{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return toQuota(resp)
}

// Authorize consumes one unit. A refusal is returned as an error matching
// common.ErrQuotaExceeded.
func (c *GRPCClient) Authorize(ctx context.Context) (*Quota, error) {
	resp, err := c.client.Authorize(ctx, &rpc.AuthorizeRequest{})
	if err != nil {
		return nil, c.mapError(err)
	}
	return toQuota(resp)
}

func toQuota(resp *rpc.QuotaResponse) (*Quota, error) {
	if err := resp.GetResetAt().CheckValid(); err != nil {
		return nil, fmt.Errorf("bad resetAt: %w", err)
	}
	return &Quota{
		Subject:   resp.Subject,
		Kind:      resp.Kind,
		Allowed:   resp.Allowed,
		Limit:     resp.Limit,
		Used:      resp.Used,
		Remaining: resp.Remaining,
		ResetAt:   resp.GetResetAt().AsTime(),
		FailOpen:  resp.FailOpen,
	}, nil
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.ResourceExhausted:
		msg := st.Message()
		if info, ok := rpc.Info(err); ok {
			msg = fmt.Sprintf("%s (resets at %s)", msg, info.GetMetadata()["resetAt"])
		}
		return fmt.Errorf("%w: %s", common.ErrQuotaExceeded, msg)
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
