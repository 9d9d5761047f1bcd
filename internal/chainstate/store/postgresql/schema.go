package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// EnsureSchema creates the block and transaction relations and their height indexes if they do not exist yet.
func (p *PostgreSQL) EnsureSchema(ctx context.Context) (err error) {
	ctx, span := tracing.StartTracing(ctx, "EnsureSchema", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	conn, err := p.conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, q := range []string{
		p.q.createBlockTable,
		p.q.createBlockIndex,
		p.q.createTransactionTable,
		p.q.createTransactionIndex,
	} {
		_, err = conn.ExecContext(ctx, q)
		if err != nil {
			return errors.Join(store.ErrFailedToCreateSchema, err)
		}
	}

	return nil
}

// IsolationLevel returns the isolation level the store's transactions run at, e.g. "repeatable read". It is read
// inside a transaction begun like every other operation, so it reflects the configured level rather than the
// server default.
func (p *PostgreSQL) IsolationLevel(ctx context.Context) (string, error) {
	var level string

	err := p.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, "SHOW transaction_isolation").Scan(&level)
	})
	if err != nil {
		return "", fmt.Errorf("failed to get transaction isolation level: %w", err)
	}

	return level, nil
}
