package chainstate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
)

// HandleOrphaned removes the block and reverts the transactions confirmed at its height to pending. How the
// caches follow depends on the orphan invalidation mode.
func (e *Engine) HandleOrphaned(ctx context.Context, orphaned Orphaned) (err error) {
	ctx, end := e.startTracing(ctx, "HandleOrphaned", attribute.String("hash", orphaned.Hash.Hex()))
	defer func() {
		end(err)
	}()

	unlock := e.lockAll()
	defer unlock()

	reverted, err := e.store.OrphanBlock(ctx, orphaned.Height, orphaned.Hash.Bytes())
	if err != nil {
		return errors.Join(ErrFailedToHandleOrphaned, err)
	}

	if e.orphanInvalidation == OrphanInvalidationEager {
		e.caches.Blocks.Remove(orphaned.Hash)
		for _, tx := range reverted {
			e.caches.SetPending(common.BytesToHash(tx.Hash), tx.LastTimestamp)
		}
	}

	if tip := e.ChainTip(); tip != nil && tip.Hash == orphaned.Hash {
		if reloadErr := e.reloadTip(ctx); reloadErr != nil {
			e.logger.Error("Failed to reload chain tip", slog.String("err", reloadErr.Error()))
		}
	}

	e.logger.Info("Block orphaned",
		slog.String("hash", orphaned.Hash.Hex()),
		slog.Uint64("height", orphaned.Height),
		slog.Int("reverted", len(reverted)),
		slog.String("invalidation", string(e.orphanInvalidation)),
	)

	return nil
}
