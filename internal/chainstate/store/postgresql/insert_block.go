package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// InsertBlock records a new block and confirms every tracked transaction in txHashes at the block's height,
// whatever their previous state. Hashes which are not tracked are ignored. The confirmed rows are returned.
func (p *PostgreSQL) InsertBlock(ctx context.Context, block *store.Block, txHashes [][]byte) (confirmed []store.TxState, err error) {
	ctx, span := tracing.StartTracing(ctx, "InsertBlock", p.tracingEnabled, append(p.tracingAttributes, attribute.Int("txs", len(txHashes)))...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	txHeight, err := heightToInt4(block.Height)
	if err != nil {
		return nil, err
	}

	timestamp, err := toInt4("timestamp", block.Timestamp)
	if err != nil {
		return nil, err
	}

	height := block.Height

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		insertStmt, err := prepare(ctx, tx, p.q.insertBlock)
		if err != nil {
			return err
		}
		defer insertStmt.Close()

		_, err = insertStmt.ExecContext(ctx, block.Hash, block.Height, block.PreviousHash, timestamp)
		if err != nil {
			return errors.Join(store.ErrFailedToInsertBlock, err)
		}

		if len(txHashes) == 0 {
			confirmed = []store.TxState{}
			return nil
		}

		confirmStmt, err := prepare(ctx, tx, p.q.confirmTxs)
		if err != nil {
			return err
		}
		defer confirmStmt.Close()

		rows, err := confirmStmt.QueryContext(ctx, txHeight, timestamp, txHashes)
		if err != nil {
			return errors.Join(store.ErrFailedToConfirmTxs, err)
		}
		defer rows.Close()

		confirmed, err = parseTxStates(rows, &height)
		return err
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}
