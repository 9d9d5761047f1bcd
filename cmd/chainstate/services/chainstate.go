package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/config"
	"github.com/txsync/chainstate/internal/chainstate"
	"github.com/txsync/chainstate/internal/chainstate/cache"
	"github.com/txsync/chainstate/internal/chainstate/mq"
	"github.com/txsync/chainstate/internal/chainstate/store/postgresql"
	"github.com/txsync/chainstate/internal/grpc_server"
	"github.com/txsync/chainstate/internal/nats_mq"
	"github.com/txsync/chainstate/internal/tracing"
)

const (
	service = "chainstate"

	startupTimeout = 5 * time.Minute
)

// StartChainState warms up the caches, subscribes to the event subjects and serves the health service. The
// returned function shuts every component down in reverse order.
func StartChainState(logger *slog.Logger, cfg *config.ChainStateConfig) (func(), error) {
	logger.Info("Starting")

	var (
		chainStore  *postgresql.PostgreSQL
		engine      *chainstate.Engine
		natsConn    *nats.Conn
		subscriber  *mq.Subscriber
		workers     *chainstate.BackgroundWorkers
		server      *chainstate.Server
		stopTracing func()
	)

	stop := func() {
		disposeChainState(logger, server, workers, subscriber, natsConn, engine, chainStore, stopTracing)
	}

	var tracingAttributes []attribute.KeyValue
	if cfg.IsTracingEnabled() {
		cleanup, err := tracing.Enable(logger, service, cfg.Tracing.DialAddr, cfg.Tracing.Sample)
		if err != nil {
			logger.Error("failed to enable tracing", slog.String("err", err.Error()))
		} else {
			stopTracing = cleanup
		}

		tracingAttributes = append(tracingAttributes, cfg.Tracing.KeyValueAttributes...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	var err error
	chainStore, err = NewStore(ctx, logger, cfg.Db.Postgres, cfg.IsTracingEnabled(), tracingAttributes...)
	if err != nil {
		stop()
		return nil, err
	}

	caches, err := cache.NewSet(cache.Sizes{
		ConfirmedTxs: cfg.Cache.ConfirmedTxs,
		PendingTxs:   cfg.Cache.PendingTxs,
		Blocks:       cfg.Cache.Blocks,
	})
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to create caches: %v", err)
	}

	orphanInvalidation, err := chainstate.ParseOrphanInvalidation(cfg.Cache.OrphanInvalidation)
	if err != nil {
		stop()
		return nil, err
	}

	engineOpts := []func(*chainstate.Engine){
		chainstate.WithOrphanInvalidation(orphanInvalidation),
		chainstate.WithStatCollectionInterval(cfg.Engine.StatsInterval),
	}
	if cfg.Engine.SerializeMutations {
		engineOpts = append(engineOpts, chainstate.WithSerializedMutations(cfg.Engine.LockStripes))
	}
	if cfg.IsTracingEnabled() {
		engineOpts = append(engineOpts, chainstate.WithTracer(tracingAttributes...))
	}

	engine = chainstate.NewEngine(logger, chainStore, caches, engineOpts...)

	err = engine.WarmUp(ctx)
	if err != nil {
		stop()
		return nil, err
	}

	if cfg.Prometheus.IsEnabled() {
		err = engine.StartCollectStats()
		if err != nil {
			stop()
			return nil, fmt.Errorf("failed to start stats collection: %v", err)
		}
	}

	var natsOpts []nats.Option
	if cfg.MessageQueue.User != "" {
		natsOpts = append(natsOpts, nats_mq.WithLogin(cfg.MessageQueue.User, cfg.MessageQueue.Password))
	}

	natsConn, err = nats_mq.NewNatsClient(cfg.MessageQueue.URL, logger, natsOpts...)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to establish connection to message queue at URL %s: %v", cfg.MessageQueue.URL, err)
	}

	subscriber = mq.NewSubscriber(logger, natsConn, engine,
		mq.WithSubjectPrefix(cfg.MessageQueue.SubjectPrefix),
		mq.WithQueueGroup(cfg.MessageQueue.QueueGroup),
		mq.WithWorkers(cfg.MessageQueue.Workers, cfg.MessageQueue.QueueSize),
		mq.WithRetry(cfg.MessageQueue.MaxRetries, cfg.MessageQueue.RetryInterval),
		mq.WithDedupWindow(cfg.MessageQueue.DedupWindow),
	)

	err = subscriber.Start()
	if err != nil {
		stop()
		return nil, err
	}

	workers = chainstate.NewBackgroundWorkers(engine, logger)
	if cfg.ConfirmedExpiry.Enabled {
		workers.StartConfirmedExpiry(cfg.ConfirmedExpiry.Interval, cfg.ConfirmedExpiry.RetentionBlocks)
	}

	serverCfg := grpc_server.ServerConfig{
		MaxMsgSize:     cfg.GrpcMessageSize,
		TracingEnabled: cfg.IsTracingEnabled(),
		Name:           service,
	}
	if cfg.Prometheus.IsEnabled() {
		serverCfg.PrometheusEndpoint = cfg.Prometheus.Endpoint
	}

	server, err = chainstate.NewServer(logger, chainStore, engine, natsConn, serverCfg)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to create server: %v", err)
	}

	err = server.ListenAndServe(cfg.HealthServerListenAddr)
	if err != nil {
		stop()
		return nil, fmt.Errorf("health server failed: %v", err)
	}

	return stop, nil
}

// NewStore opens the store, creates the schema if missing and checks the isolation level precondition.
func NewStore(ctx context.Context, logger *slog.Logger, dbCfg *config.PostgresConfig, tracingEnabled bool, tracingAttributes ...attribute.KeyValue) (*postgresql.PostgreSQL, error) {
	isolationLevel, err := dbCfg.SQLIsolationLevel()
	if err != nil {
		return nil, err
	}

	opts := []func(*postgresql.PostgreSQL){
		postgresql.WithTables(dbCfg.BlockTable, dbCfg.TransactionTable),
		postgresql.WithIsolationLevel(isolationLevel),
		postgresql.WithAcquireTimeout(dbCfg.AcquireTimeout),
	}
	if tracingEnabled {
		opts = append(opts, postgresql.WithTracer(tracingAttributes...))
	}

	s, err := postgresql.New(dbCfg.DSN(), dbCfg.MaxIdleConns, dbCfg.MaxOpenConns, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres DB: %v", err)
	}

	err = s.EnsureSchema(ctx)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	err = chainstate.CheckIsolationLevel(ctx, logger, s, dbCfg.RequiredIsolationLevel, dbCfg.EnforceIsolationLevel)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

func disposeChainState(l *slog.Logger, server *chainstate.Server, workers *chainstate.BackgroundWorkers, subscriber *mq.Subscriber,
	natsConn *nats.Conn, engine *chainstate.Engine, chainStore *postgresql.PostgreSQL, stopTracing func()) {
	l.Info("Shutting down")

	// dispose of dependencies in the correct order:
	// 1. server - stop reporting readiness
	// 2. workers and subscriber - stop producing events and finish the ones in flight
	// 3. nats connection
	// 4. engine - stop stats collection
	// 5. store
	// 6. tracing

	if server != nil {
		server.GracefulStop()
	}
	if workers != nil {
		workers.GracefulStop()
	}
	if subscriber != nil {
		subscriber.GracefulStop()
	}
	if natsConn != nil {
		err := natsConn.Drain()
		if err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			l.Error("Failed to drain nats connection", slog.String("err", err.Error()))
		}
	}
	if engine != nil {
		engine.Shutdown()
	}
	if chainStore != nil {
		err := chainStore.Close()
		if err != nil {
			l.Error("Failed to close store", slog.String("err", err.Error()))
		}
	}
	if stopTracing != nil {
		stopTracing()
	}

	l.Info("Shutdown complete")
}
