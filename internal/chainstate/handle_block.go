package chainstate

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/cache"
	"github.com/txsync/chainstate/internal/chainstate/store"
)

// HandleBlock records the block and confirms every tracked transaction it includes at the block's height,
// whether the transaction was pending or confirmed in a block which has since been orphaned. A block which
// is already recorded fails with store.ErrDuplicateKey.
func (e *Engine) HandleBlock(ctx context.Context, block NewBlock) (err error) {
	ctx, end := e.startTracing(ctx, "HandleBlock", attribute.String("hash", block.Hash.Hex()), attribute.Int("txs", len(block.TxHashes)))
	defer func() {
		end(err)
	}()

	unlock := e.lockHashes(append([]common.Hash{block.Hash}, block.TxHashes...)...)
	defer unlock()

	b := &store.Block{
		Hash:      block.Hash.Bytes(),
		Height:    block.Height,
		Timestamp: block.Timestamp,
	}
	if block.ParentHash != nil {
		b.PreviousHash = block.ParentHash.Bytes()
	}

	confirmed, err := e.store.InsertBlock(ctx, b, hashesToBytes(block.TxHashes))
	if err != nil {
		return errors.Join(ErrFailedToHandleBlock, err)
	}

	e.caches.Blocks.Set(block.Hash, block.Height)
	for _, tx := range confirmed {
		e.caches.SetConfirmed(common.BytesToHash(tx.Hash), block.Height, tx.LastTimestamp)
	}
	e.advanceTip(block.Hash, block.Height)

	e.logger.Debug("Block recorded",
		slog.String("hash", block.Hash.Hex()),
		slog.Uint64("height", block.Height),
		slog.Int("included", len(block.TxHashes)),
		slog.Int("confirmed", len(confirmed)),
	)

	return nil
}

func txEntry(tx store.TxState) cache.TxEntry {
	if tx.Pending() {
		return cache.TxEntry{Height: cache.PendingHeight, LastTimestamp: tx.LastTimestamp}
	}

	return cache.TxEntry{Height: int64(*tx.Height), LastTimestamp: tx.LastTimestamp}
}
