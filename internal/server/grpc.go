package server

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// GRPCService serves a grpc.Server on a TCP address as a lifecycle Service.
type GRPCService struct {
	addr   string
	server *grpc.Server
	logger *zap.Logger
}

// NewGRPCService wraps srv for serving on addr.
//
// Precondition: srv and logger must be non-nil; addr must be "host:port".
func NewGRPCService(addr string, srv *grpc.Server, logger *zap.Logger) *GRPCService {
	return &GRPCService{addr: addr, server: srv, logger: logger}
}

// Start listens on the configured address and blocks serving until Stop.
func (g *GRPCService) Start() error {
	lis, err := net.Listen("tcp", g.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", g.addr, err)
	}
	return g.Serve(lis)
}

// Serve blocks serving on lis until Stop.
func (g *GRPCService) Serve(lis net.Listener) error {
	g.logger.Info("grpc listening", zap.String("addr", lis.Addr().String()))
	if err := g.server.Serve(lis); err != nil {
		return fmt.Errorf("serving grpc: %w", err)
	}
	return nil
}

// Stop drains in-flight calls and stops the server.
func (g *GRPCService) Stop() {
	g.server.GracefulStop()
}
