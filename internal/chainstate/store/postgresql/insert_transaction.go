package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// InsertTransaction starts tracking a pending transaction. A hash which is already tracked fails with
// store.ErrDuplicateKey.
func (p *PostgreSQL) InsertTransaction(ctx context.Context, transaction *store.Transaction) (err error) {
	ctx, span := tracing.StartTracing(ctx, "InsertTransaction", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	timestamp, err := toInt4("timestamp", transaction.Timestamp)
	if err != nil {
		return err
	}

	return p.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := prepare(ctx, tx, p.q.insertTransaction)
		if err != nil {
			return err
		}
		defer stmt.Close()

		_, err = stmt.ExecContext(ctx, transaction.Hash, timestamp, transaction.Affected)
		if err != nil {
			return errors.Join(store.ErrFailedToInsertTransaction, err)
		}

		return nil
	})
}
