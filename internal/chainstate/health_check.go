package chainstate

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const (
	readiness = "readiness"
)

type HealthWatchServer interface {
	Send(*grpc_health_v1.HealthCheckResponse) error
	grpc.ServerStream
}

func servingStatus(ok bool) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if ok {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}

	return grpc_health_v1.HealthCheckResponse_NOT_SERVING
}

func (s *Server) mqConnected() bool {
	return s.mqClient != nil && s.mqClient.Status() == nats.CONNECTED
}

func (s *Server) List(ctx context.Context, _ *grpc_health_v1.HealthListRequest) (*grpc_health_v1.HealthListResponse, error) {
	return &grpc_health_v1.HealthListResponse{
		Statuses: map[string]*grpc_health_v1.HealthCheckResponse{
			"server": {
				Status: grpc_health_v1.HealthCheckResponse_SERVING,
			},
			"mq": {
				Status: servingStatus(s.mqConnected()),
			},
			"store": {
				Status: servingStatus(s.store.Ping(ctx) == nil),
			},
			"caches": {
				Status: servingStatus(s.engine.Ready()),
			},
		},
	}, nil
}

func (s *Server) status(ctx context.Context, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if service != readiness {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}

	if !s.engine.Ready() {
		s.logger.Warn("caches not warmed up")
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	err := s.store.Ping(ctx)
	if err != nil {
		s.logger.Error("no connection to DB", slog.String("err", err.Error()))
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	if !s.mqConnected() {
		s.logger.Error("no connection to message queue")
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	return grpc_health_v1.HealthCheckResponse_SERVING
}

func (s *Server) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	s.logger.Debug("checking health", slog.String("service", req.Service))

	return &grpc_health_v1.HealthCheckResponse{
		Status: s.status(ctx, req.Service),
	}, nil
}

func (s *Server) Watch(req *grpc_health_v1.HealthCheckRequest, server grpc_health_v1.Health_WatchServer) error {
	s.logger.Info("watching health", slog.String("service", req.Service))

	return server.Send(&grpc_health_v1.HealthCheckResponse{
		Status: s.status(server.Context(), req.Service),
	})
}
