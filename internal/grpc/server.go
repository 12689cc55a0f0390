package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"meetingsManagement/internal/auth"
	"meetingsManagement/internal/logging"
	"meetingsManagement/internal/router"
)

// NewServer builds the gRPC server exposing NavigationService and the
// standard health service. Bearer tokens in metadata reach the guard
// through the token interceptor.
func NewServer(r *router.Router) *grpc.Server {
	srv := grpc.NewServer(grpc.UnaryInterceptor(auth.NewUnaryTokenInterceptor()))
	RegisterNavigationServiceServer(srv, &NavigationServer{Router: r})

	hs := health.NewServer()
	hs.SetServingStatus(navigationServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}

// Start listens on addr and serves srv in the background. It returns the
// bound address and a shutdown func that stops gracefully, forcing a stop
// when ctx expires first.
func Start(srv *grpc.Server, addr string, logger *zap.Logger) (net.Addr, func(context.Context) error, error) {
	logger = logging.OrNop(logger)
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("gRPC server stopped", zap.Error(err))
		}
	}()
	logger.Info("gRPC server listening", zap.String("address", lis.Addr().String()))

	return lis.Addr(), func(ctx context.Context) error {
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
