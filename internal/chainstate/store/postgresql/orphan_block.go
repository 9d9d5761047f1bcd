package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// OrphanBlock removes the block row with the given hash and reverts every transaction confirmed at height to
// pending. The reverted transactions are returned.
func (p *PostgreSQL) OrphanBlock(ctx context.Context, height uint64, hash []byte) (reverted []store.TxState, err error) {
	txHeight, err := heightToInt4(height)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartTracing(ctx, "OrphanBlock", p.tracingEnabled, append(p.tracingAttributes, attribute.Int("height", int(txHeight)))...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		deleteStmt, err := prepare(ctx, tx, p.q.deleteBlock)
		if err != nil {
			return err
		}
		defer deleteStmt.Close()

		_, err = deleteStmt.ExecContext(ctx, hash)
		if err != nil {
			return errors.Join(store.ErrFailedToOrphanBlock, err)
		}

		revertStmt, err := prepare(ctx, tx, p.q.revertTxs)
		if err != nil {
			return err
		}
		defer revertStmt.Close()

		rows, err := revertStmt.QueryContext(ctx, txHeight)
		if err != nil {
			return errors.Join(store.ErrFailedToOrphanBlock, err)
		}
		defer rows.Close()

		reverted, err = parseTxStates(rows, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return reverted, nil
}
