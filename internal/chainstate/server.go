package chainstate

import (
	"log/slog"

	"github.com/nats-io/nats.go"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/grpc_server"
)

type MessageQueueClient interface {
	Status() nats.Status
}

type Readiness interface {
	Ready() bool
}

// Server exposes the gRPC health service of the chain-state engine.
type Server struct {
	grpc_health_v1.UnimplementedHealthServer
	grpc_server.GrpcServer

	logger   *slog.Logger
	store    store.ChainStateStore
	engine   Readiness
	mqClient MessageQueueClient
}

func NewServer(logger *slog.Logger, store store.ChainStateStore, engine Readiness, mqClient MessageQueueClient, cfg grpc_server.ServerConfig) (*Server, error) {
	logger = logger.With(slog.String("module", "server"))

	grpcServer, err := grpc_server.NewGrpcServer(logger, cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		GrpcServer: grpcServer,
		logger:     logger,
		store:      store,
		engine:     engine,
		mqClient:   mqClient,
	}

	grpc_health_v1.RegisterHealthServer(s.GrpcServer.Srv, s)
	reflection.Register(s.GrpcServer.Srv)

	return s, nil
}
