package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // nolint: gosec // profiler is only served on the configured address
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/txsync/chainstate/cmd/chainstate/services"
	"github.com/txsync/chainstate/config"
	chainStateLogger "github.com/txsync/chainstate/internal/logger"
)

const configFlag = "config"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chainstate",
		Short:         "Keeps a Postgres chain state and its caches in sync with block and transaction events",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			return run(logger, cfg)
		},
	}

	rootCmd.PersistentFlags().String(configFlag, "", "directory to look for config.yaml")

	rootCmd.AddCommand(
		newDumpConfigCmd(),
		newEnsureSchemaCmd(),
		newExpireConfirmedCmd(),
		newStatsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads the configuration from the directory given by the config flag and creates the logger.
func setup(cmd *cobra.Command) (*config.ChainStateConfig, *slog.Logger, error) {
	configDir, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load app config: %w", err)
	}

	logger, err := chainStateLogger.NewLogger(cfg.LogLevel, cfg.LogFormat, chainStateLogger.WithService("chainstate"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get host name: %v", err)
	}

	return cfg, logger.With(slog.String("host", hostname)), nil
}

func run(logger *slog.Logger, cfg *config.ChainStateConfig) error {
	logger.Info("Starting chainstate", slog.String("version", version), slog.String("commit", commit))

	if cfg.ProfilerAddr != "" {
		go func() {
			logger.Info(fmt.Sprintf("Starting profiler on http://%s/debug/pprof", cfg.ProfilerAddr))

			srv := &http.Server{Addr: cfg.ProfilerAddr, ReadHeaderTimeout: 10 * time.Second}
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to start profiler server", slog.String("err", err.Error()))
			}
		}()
	}

	if cfg.Prometheus.IsEnabled() {
		go func() {
			logger.Info("Starting prometheus", slog.String("endpoint", cfg.Prometheus.Endpoint))

			mux := http.NewServeMux()
			mux.Handle(cfg.Prometheus.Endpoint, promhttp.Handler())
			srv := &http.Server{Addr: cfg.Prometheus.Addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to start prometheus server", slog.String("err", err.Error()))
			}
		}()
	}

	shutdown, err := services.StartChainState(logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to start chainstate: %v", err)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-signalChan
	logger.Info("Received shutdown signal", slog.String("reason", sig.String()))

	shutdown()

	return nil
}
