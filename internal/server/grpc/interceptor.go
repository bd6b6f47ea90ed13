package grpc

import (
	"context"

	"github.com/Perry5596/ShopAI-sub001/internal/common"
	"github.com/Perry5596/ShopAI-sub001/internal/rpc"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// publicMethods need no credential.
var publicMethods = map[string]bool{
	rpc.Identity_IssueAnonymous_FullMethodName: true,
}

// identityInterceptor resolves the caller from request metadata and stores
// the Identity in the handler's context.
func (s *GRPCServer) identityInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	id, err := s.resolver.Resolve(ctx, credentialsFromMetadata(ctx))
	if err != nil {
		s.logger.Info(ctx, "caller rejected", "method", info.FullMethod, "error", err)
		return nil, toStatus(err)
	}

	return handler(identity.WithIdentity(ctx, id), req)
}

func credentialsFromMetadata(ctx context.Context) identity.Credentials {
	var c identity.Credentials
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return c
	}
	if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
		c.Bearer = identity.ParseBearer(values[0])
	}
	if values := md.Get(common.AnonymousTokenHeaderName); len(values) > 0 {
		c.Anonymous = values[0]
	}
	return c
}
