package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/txsync/chainstate/cmd/chainstate/services"
	"github.com/txsync/chainstate/config"
	"github.com/txsync/chainstate/internal/chainstate/store"
)

const commandTimeout = 10 * time.Minute

func newDumpConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-config <file>",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, err := setup(cmd)
			if err != nil {
				return err
			}

			return config.DumpConfig(args[0])
		},
	}
}

func newEnsureSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-schema",
		Short: "Create the block and transaction tables and indexes if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			s, err := services.NewStore(ctx, logger, cfg.Db.Postgres, false)
			if err != nil {
				return err
			}

			logger.Info("Schema is up to date")

			return s.Close()
		},
	}
}

func newExpireConfirmedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expire-confirmed",
		Short: "Delete confirmed transactions more than the retention number of blocks below the chain tip",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			retentionBlocks, err := cmd.Flags().GetUint64("retention-blocks")
			if err != nil {
				return err
			}
			if retentionBlocks == 0 {
				retentionBlocks = cfg.ConfirmedExpiry.RetentionBlocks
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			s, err := services.NewStore(ctx, logger, cfg.Db.Postgres, false)
			if err != nil {
				return err
			}
			defer s.Close()

			deleted, err := s.DeleteConfirmedTransactions(ctx, retentionBlocks)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d confirmed transactions (retention %d blocks)\n", len(deleted), retentionBlocks)

			return nil
		},
	}

	cmd.Flags().Uint64("retention-blocks", 0, "number of blocks below the chain tip to keep, defaults to confirmedExpiry.retentionBlocks")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts and the chain tip of the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			s, err := services.NewStore(ctx, logger, cfg.Db.Postgres, false)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.GetStats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))

			return nil
		},
	}
}

func renderStats(stats *store.Stats) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"chain tip", stats.ChainTip},
		{"blocks", stats.Blocks},
		{"pending transactions", stats.PendingTxs},
		{"confirmed transactions", stats.ConfirmedTxs},
		{"affected transactions", stats.AffectedTxs},
	})

	return t.Render()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chainstate %s (%s)\n", version, commit)
		},
	}
}
