package chainstate

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

// HandleTransaction starts tracking a pending transaction. Deduplication is up to the source: a hash which is
// already tracked fails with store.ErrDuplicateKey and nothing is merged.
func (e *Engine) HandleTransaction(ctx context.Context, tx NewTransaction) (err error) {
	ctx, end := e.startTracing(ctx, "HandleTransaction", attribute.String("hash", tx.Hash.Hex()))
	defer func() {
		end(err)
	}()

	unlock := e.lockHashes(tx.Hash)
	defer unlock()

	err = e.store.InsertTransaction(ctx, &store.Transaction{
		Hash:      tx.Hash.Bytes(),
		Timestamp: tx.Timestamp,
		Affected:  tx.Affected,
	})
	if err != nil {
		return errors.Join(ErrFailedToHandleTransaction, err)
	}

	e.caches.SetPending(tx.Hash, tx.Timestamp)

	e.logger.Debug("Transaction tracked", slog.String("hash", tx.Hash.Hex()), slog.Bool("affected", tx.Affected))

	return nil
}
