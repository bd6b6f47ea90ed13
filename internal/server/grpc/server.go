// Package grpc serves the Identity service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/Perry5596/ShopAI-sub001/internal/logging"
	"github.com/Perry5596/ShopAI-sub001/internal/rpc"
	"github.com/Perry5596/ShopAI-sub001/internal/server/identity"
	"github.com/Perry5596/ShopAI-sub001/internal/server/quota"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	rpc.UnimplementedIdentityServer

	address  string
	issuer   *identity.Issuer
	resolver *identity.Resolver
	ledger   *quota.Ledger
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, is *identity.Issuer, rs *identity.Resolver, ld *quota.Ledger) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		issuer:   is,
		resolver: rs,
		ledger:   ld,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.identityInterceptor))
	rpc.RegisterIdentityServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
