package server

import (
	"context"
	"net"
	"time"

	"github.com/MKhiriev/secure-vault/internal/config"
	myGRPC "github.com/MKhiriev/secure-vault/internal/handler/grpc"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type grpcServer struct {
	handler *myGRPC.Handler
	address string

	server *grpc.Server

	probeCtx  context.Context
	stopProbe context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(logger)))
	handler.Register(s)

	probeCtx, stopProbe := context.WithCancel(context.Background())

	return &grpcServer{
		handler:   handler,
		address:   cfg.GRPCAddress,
		server:    s,
		probeCtx:  probeCtx,
		stopProbe: stopProbe,
		logger:    logger,
	}
}

func (g *grpcServer) RunServer() {
	l, err := net.Listen("tcp", g.address)
	if err != nil {
		g.logger.Err(err).Str("address", g.address).Msg("gRPC server Listen")
		return
	}
	if err = g.serve(l); err != nil {
		g.logger.Err(err).Msg("gRPC server Serve")
	}
}

func (g *grpcServer) serve(l net.Listener) error {
	go g.handler.Watch(g.probeCtx, myGRPC.DefaultProbeInterval)

	return g.server.Serve(l)
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.stopProbe()
	g.handler.Shutdown()
	g.server.GracefulStop()
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		log.Debug().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Send()

		return resp, err
	}
}
