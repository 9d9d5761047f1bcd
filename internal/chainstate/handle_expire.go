package chainstate

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"
)

// HandleConfirmedExpired deletes confirmed transactions more than RetentionBlocks below the chain tip.
// Transactions flagged as affected are retained. Running it again without other events deletes nothing.
func (e *Engine) HandleConfirmedExpired(ctx context.Context, expired ConfirmedExpired) (err error) {
	ctx, end := e.startTracing(ctx, "HandleConfirmedExpired", attribute.String("retention_blocks", strconv.FormatUint(expired.RetentionBlocks, 10)))
	defer func() {
		end(err)
	}()

	unlock := e.lockAll()
	defer unlock()

	deleted, err := e.store.DeleteConfirmedTransactions(ctx, expired.RetentionBlocks)
	if err != nil {
		return errors.Join(ErrFailedToHandleConfirmedExpired, err)
	}

	for _, h := range deleted {
		e.caches.RemoveTx(common.BytesToHash(h))
	}

	e.logger.Info("Confirmed transactions expired", slog.Uint64("retention_blocks", expired.RetentionBlocks), slog.Int("deleted", len(deleted)))

	return nil
}
