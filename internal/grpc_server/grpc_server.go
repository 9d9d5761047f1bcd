package grpc_server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	prometheusclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrServerFailedToListen       = errors.New("GRPC server failed to listen")
	ErrGRPCFailedToRegisterPanics = errors.New("failed to register panics total metric")
	ErrGRPCFailedToRegisterServer = errors.New("failed to register server metrics")
)

type ServerConfig struct {
	PrometheusEndpoint string
	MaxMsgSize         int
	TracingEnabled     bool
	Name               string
}

type GrpcServer struct {
	Srv *grpc.Server

	logger  *slog.Logger
	cleanup func()
}

// interceptorLogger adapts slog logger to interceptor logger.
func interceptorLogger(l *slog.Logger) logging.Logger {
	return logging.LoggerFunc(func(_ context.Context, lvl logging.Level, msg string, fields ...any) {
		switch lvl {
		case logging.LevelDebug:
			l.Debug(msg, fields...)
		case logging.LevelInfo:
			l.Info(msg, fields...)
		case logging.LevelWarn:
			l.Warn(msg, fields...)
		case logging.LevelError:
			l.Error(msg, fields...)
		default:
			panic(fmt.Sprintf("unknown level %v", lvl))
		}
	})
}

func NewGrpcServer(logger *slog.Logger, cfg ServerConfig) (GrpcServer, error) {
	metrics, opts, cleanup, err := getGRPCServerOpts(logger, cfg)
	if err != nil {
		return GrpcServer{}, err
	}

	grpcSrv := grpc.NewServer(opts...)

	if metrics != nil {
		metrics.InitializeMetrics(grpcSrv)
	}

	return GrpcServer{
		Srv:     grpcSrv,
		logger:  logger,
		cleanup: cleanup,
	}, nil
}

func getGRPCServerOpts(logger *slog.Logger, cfg ServerConfig) (*prometheus.ServerMetrics, []grpc.ServerOption, func(), error) {
	rpcLogger := logger.With(slog.String("service", "gRPC/server"))
	logTraceID := func(ctx context.Context) logging.Fields {
		if span := trace.SpanContextFromContext(ctx); span.IsSampled() {
			return logging.Fields{"traceID", span.TraceID().String()}
		}
		return nil
	}

	panicsTotal := prometheusclient.NewCounter(prometheusclient.CounterOpts{
		Name: fmt.Sprintf("grpc_req_panics_recovered_%s_total", cfg.Name),
		Help: "Total number of gRPC requests recovered from internal panic.",
	})

	err := prometheusclient.Register(panicsTotal)
	if err != nil {
		return nil, nil, nil, errors.Join(ErrGRPCFailedToRegisterPanics, err)
	}

	grpcPanicRecoveryHandler := func(p any) (err error) {
		panicsTotal.Inc()
		rpcLogger.Error("recovered from panic", "panic", p, "stack", debug.Stack())
		return status.Errorf(codes.Internal, "%s", p)
	}

	opts := make([]grpc.ServerOption, 0)
	if cfg.TracingEnabled {
		opts = append(opts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}

	var srvMetrics *prometheus.ServerMetrics
	var chainUnaryInterceptors []grpc.UnaryServerInterceptor
	var chainStreamInterceptors []grpc.StreamServerInterceptor

	if cfg.PrometheusEndpoint != "" {
		srvMetrics = prometheus.NewServerMetrics(
			prometheus.WithServerHandlingTimeHistogram(
				prometheus.WithHistogramBuckets([]float64{0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9, 20, 30, 60, 90, 120}),
			),
		)

		err = prometheusclient.Register(srvMetrics)
		if err != nil {
			prometheusclient.Unregister(panicsTotal)
			return nil, nil, nil, errors.Join(ErrGRPCFailedToRegisterServer, err)
		}

		exemplarFromContext := func(ctx context.Context) prometheusclient.Labels {
			if span := trace.SpanContextFromContext(ctx); span.IsSampled() {
				return prometheusclient.Labels{"traceID": span.TraceID().String()}
			}
			return nil
		}

		chainUnaryInterceptors = append(chainUnaryInterceptors, srvMetrics.UnaryServerInterceptor(prometheus.WithExemplarFromContext(exemplarFromContext)))
		chainStreamInterceptors = append(chainStreamInterceptors, srvMetrics.StreamServerInterceptor(prometheus.WithExemplarFromContext(exemplarFromContext)))
	}

	chainUnaryInterceptors = append(chainUnaryInterceptors, // Order matters e.g. tracing interceptor have to create span first for the later exemplars to work.
		logging.UnaryServerInterceptor(interceptorLogger(rpcLogger), logging.WithFieldsFromContext(logTraceID)),
		recovery.UnaryServerInterceptor(recovery.WithRecoveryHandler(grpcPanicRecoveryHandler)))
	chainStreamInterceptors = append(chainStreamInterceptors,
		logging.StreamServerInterceptor(interceptorLogger(rpcLogger), logging.WithFieldsFromContext(logTraceID)),
		recovery.StreamServerInterceptor(recovery.WithRecoveryHandler(grpcPanicRecoveryHandler)))

	opts = append(opts,
		grpc.ChainUnaryInterceptor(chainUnaryInterceptors...),
		grpc.ChainStreamInterceptor(chainStreamInterceptors...),
	)
	if cfg.MaxMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.MaxMsgSize))
	}

	cleanup := func() {
		prometheusclient.Unregister(panicsTotal)
		if srvMetrics != nil {
			prometheusclient.Unregister(srvMetrics)
		}
	}

	return srvMetrics, opts, cleanup, nil
}

func (s *GrpcServer) ListenAndServe(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Join(ErrServerFailedToListen, fmt.Errorf("address %s: %w", address, err))
	}

	go func() {
		s.logger.Info("GRPC server listening", slog.String("address", address))
		serveErr := s.Srv.Serve(listener)
		if serveErr != nil {
			s.logger.Error("GRPC server failed to serve", slog.String("err", serveErr.Error()))
		}
	}()

	return nil
}

func (s *GrpcServer) GracefulStop() {
	s.logger.Info("Shutting down gRPC server")

	s.Srv.GracefulStop()

	if s.cleanup != nil {
		s.cleanup()
	}

	s.logger.Info("Shutdown gRPC server complete")
}
