package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ccoveille/go-safecast"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

// UpdatePendingLastSeen refreshes last_timestamp of a tracked transaction and returns the row's state after
// the update. Height is never touched.
func (p *PostgreSQL) UpdatePendingLastSeen(ctx context.Context, hash []byte, lastTimestamp int64) (state *store.TxState, err error) {
	ctx, span := tracing.StartTracing(ctx, "UpdatePendingLastSeen", p.tracingEnabled, p.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	ts, err := toInt4("last_timestamp", lastTimestamp)
	if err != nil {
		return nil, err
	}

	err = p.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := prepare(ctx, tx, p.q.updateLastSeen)
		if err != nil {
			return err
		}
		defer stmt.Close()

		var height sql.NullInt64
		var updatedTimestamp int64

		err = stmt.QueryRowContext(ctx, ts, hash).Scan(&height, &updatedTimestamp)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrNotFound
			}
			return errors.Join(store.ErrFailedToUpdateTransaction, err)
		}

		state = &store.TxState{Hash: hash, LastTimestamp: updatedTimestamp}
		if height.Valid {
			h, err := safecast.ToUint64(height.Int64)
			if err != nil {
				return errors.Join(store.ErrFailedToGetRows, err)
			}
			state.Height = &h
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return state, nil
}
