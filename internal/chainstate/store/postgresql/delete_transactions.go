package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// DeleteTransactions removes the given transactions regardless of their height and returns the hashes which
// were actually deleted.
func (p *PostgreSQL) DeleteTransactions(ctx context.Context, hashes [][]byte) (deleted [][]byte, err error) {
	ctx, span := tracing.StartTracing(ctx, "DeleteTransactions", p.tracingEnabled, append(p.tracingAttributes, attribute.Int("hashes", len(hashes)))...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if len(hashes) == 0 {
		return [][]byte{}, nil
	}

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := prepare(ctx, tx, p.q.deleteTransactions)
		if err != nil {
			return err
		}
		defer stmt.Close()

		rows, err := stmt.QueryContext(ctx, hashes)
		if err != nil {
			return errors.Join(store.ErrUnableToDeleteRows, err)
		}
		defer rows.Close()

		deleted, err = parseHashes(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// DeleteConfirmedTransactions removes confirmed transactions more than retentionBlocks below the highest
// recorded block. Transactions flagged as affected are kept.
func (p *PostgreSQL) DeleteConfirmedTransactions(ctx context.Context, retentionBlocks uint64) (deleted [][]byte, err error) {
	ctx, span := tracing.StartTracing(ctx, "DeleteConfirmedTransactions", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	retention, err := safecastRetention(retentionBlocks)
	if err != nil {
		return nil, err
	}

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := prepare(ctx, tx, p.q.deleteConfirmed)
		if err != nil {
			return err
		}
		defer stmt.Close()

		rows, err := stmt.QueryContext(ctx, retention)
		if err != nil {
			return errors.Join(store.ErrUnableToDeleteRows, err)
		}
		defer rows.Close()

		deleted, err = parseHashes(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}
