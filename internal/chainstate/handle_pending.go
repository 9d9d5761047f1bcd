package chainstate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

// HandlePendingSeen refreshes the last seen time of a tracked transaction. An unknown hash is not an error.
func (e *Engine) HandlePendingSeen(ctx context.Context, seen PendingSeen) (err error) {
	ctx, end := e.startTracing(ctx, "HandlePendingSeen", attribute.String("hash", seen.Hash.Hex()))
	defer func() {
		end(err)
	}()

	unlock := e.lockHashes(seen.Hash)
	defer unlock()

	state, err := e.store.UpdatePendingLastSeen(ctx, seen.Hash.Bytes(), seen.Timestamp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.logger.Debug("Seen transaction is not tracked", slog.String("hash", seen.Hash.Hex()))
			return nil
		}
		return errors.Join(ErrFailedToHandlePendingSeen, err)
	}

	if state.Pending() {
		e.caches.SetPending(seen.Hash, state.LastTimestamp)
		return nil
	}

	// confirmed in the meantime, keep the confirmed entry current if it is resident
	if e.caches.ConfirmedTxs.Contains(seen.Hash) {
		e.caches.ConfirmedTxs.Set(seen.Hash, txEntry(*state))
	}

	return nil
}

// HandlePendingExpired deletes the given transactions regardless of their height. The caller only passes
// hashes which are still pending.
func (e *Engine) HandlePendingExpired(ctx context.Context, expired PendingExpired) (err error) {
	if len(expired.Hashes) == 0 {
		return nil
	}

	ctx, end := e.startTracing(ctx, "HandlePendingExpired", attribute.Int("hashes", len(expired.Hashes)))
	defer func() {
		end(err)
	}()

	unlock := e.lockHashes(expired.Hashes...)
	defer unlock()

	deleted, err := e.store.DeleteTransactions(ctx, hashesToBytes(expired.Hashes))
	if err != nil {
		return errors.Join(ErrFailedToHandlePendingExpired, err)
	}

	for _, h := range deleted {
		e.caches.RemoveTx(common.BytesToHash(h))
	}

	e.logger.Debug("Pending transactions expired", slog.Int("requested", len(expired.Hashes)), slog.Int("deleted", len(deleted)))

	return nil
}
