package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ccoveille/go-safecast"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// GetConfirmedTransactions returns up to limit confirmed transactions, highest height first.
func (p *PostgreSQL) GetConfirmedTransactions(ctx context.Context, limit int) (txs []store.TxState, err error) {
	ctx, span := tracing.StartTracing(ctx, "GetConfirmedTransactions", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	conn, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, p.q.getConfirmed, limit)
	if err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}
	defer rows.Close()

	txs = make([]store.TxState, 0, limit)
	for rows.Next() {
		var tx store.TxState
		var height int64

		err = rows.Scan(&tx.Hash, &height, &tx.LastTimestamp)
		if err != nil {
			return nil, errors.Join(store.ErrFailedToGetRows, err)
		}

		h, err := safecast.ToUint64(height)
		if err != nil {
			return nil, errors.Join(store.ErrFailedToGetRows, err)
		}
		tx.Height = &h

		txs = append(txs, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return txs, nil
}

// GetPendingTransactions returns up to limit pending transactions, most recently seen first.
func (p *PostgreSQL) GetPendingTransactions(ctx context.Context, limit int) (txs []store.TxState, err error) {
	ctx, span := tracing.StartTracing(ctx, "GetPendingTransactions", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	conn, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, p.q.getPending, limit)
	if err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}
	defer rows.Close()

	return parseTxStates(rows, nil)
}

// GetBlocks returns up to limit blocks, highest first.
func (p *PostgreSQL) GetBlocks(ctx context.Context, limit int) (blocks []store.BlockState, err error) {
	ctx, span := tracing.StartTracing(ctx, "GetBlocks", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	conn, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, p.q.getBlocks, limit)
	if err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}
	defer rows.Close()

	return parseBlockStates(rows)
}

// GetChainTip returns the highest recorded block or store.ErrNotFound if there is none.
func (p *PostgreSQL) GetChainTip(ctx context.Context) (*store.BlockState, error) {
	conn, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var tip store.BlockState

	err = conn.QueryRowContext(ctx, p.q.getChainTip).Scan(&tip.Hash, &tip.Height)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return &tip, nil
}

func parseBlockStates(rows *sql.Rows) ([]store.BlockState, error) {
	blocks := make([]store.BlockState, 0)

	for rows.Next() {
		var block store.BlockState

		err := rows.Scan(&block.Hash, &block.Height)
		if err != nil {
			return nil, errors.Join(store.ErrFailedToGetRows, err)
		}

		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return blocks, nil
}
