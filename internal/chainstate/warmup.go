package chainstate

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

// WarmUp rebuilds the cache set from the store and marks the engine ready. Each row set is loaded highest
// first, sorted ascending and inserted in that order, so the entries which must stay resident go in last.
func (e *Engine) WarmUp(ctx context.Context) (err error) {
	ctx, end := e.startTracing(ctx, "WarmUp")
	defer func() {
		end(err)
	}()

	var (
		confirmed []store.TxState
		pending   []store.TxState
		blocks    []store.BlockState
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		confirmed, loadErr = e.store.GetConfirmedTransactions(gctx, e.caches.ConfirmedTxs.Size())
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		pending, loadErr = e.store.GetPendingTransactions(gctx, e.caches.PendingTxs.Size())
		return loadErr
	})
	g.Go(func() error {
		var loadErr error
		blocks, loadErr = e.store.GetBlocks(gctx, e.caches.Blocks.Size())
		return loadErr
	})

	err = g.Wait()
	if err != nil {
		return errors.Join(ErrFailedToWarmUp, err)
	}

	slices.SortFunc(confirmed, compareConfirmed)
	slices.SortFunc(pending, comparePending)
	slices.SortFunc(blocks, compareBlocks)

	e.caches.Purge()

	for _, tx := range confirmed {
		e.caches.ConfirmedTxs.Set(common.BytesToHash(tx.Hash), txEntry(tx))
	}
	for _, tx := range pending {
		e.caches.PendingTxs.Set(common.BytesToHash(tx.Hash), txEntry(tx))
	}
	for _, b := range blocks {
		e.caches.Blocks.Set(common.BytesToHash(b.Hash), b.Height)
	}

	if len(blocks) > 0 {
		top := blocks[len(blocks)-1]
		e.setTip(&ChainTip{Hash: common.BytesToHash(top.Hash), Height: top.Height})
	} else {
		e.setTip(nil)
	}

	e.ready.Store(true)

	e.logger.Info("Caches warmed up",
		slog.Int("confirmed_txs", e.caches.ConfirmedTxs.Len()),
		slog.Int("pending_txs", e.caches.PendingTxs.Len()),
		slog.Int("blocks", e.caches.Blocks.Len()),
	)

	return nil
}

// compareConfirmed orders by height, then last_timestamp, then hash, all ascending.
func compareConfirmed(a, b store.TxState) int {
	return cmp.Or(
		cmp.Compare(height(a), height(b)),
		cmp.Compare(a.LastTimestamp, b.LastTimestamp),
		bytes.Compare(a.Hash, b.Hash),
	)
}

func comparePending(a, b store.TxState) int {
	return cmp.Or(
		cmp.Compare(a.LastTimestamp, b.LastTimestamp),
		bytes.Compare(a.Hash, b.Hash),
	)
}

func compareBlocks(a, b store.BlockState) int {
	return cmp.Or(
		cmp.Compare(a.Height, b.Height),
		bytes.Compare(a.Hash, b.Hash),
	)
}

func height(tx store.TxState) uint64 {
	if tx.Height == nil {
		return 0
	}

	return *tx.Height
}
