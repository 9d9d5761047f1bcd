package postgresql

import (
	"context"
	"errors"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

func (p *PostgreSQL) GetStats(ctx context.Context) (*store.Stats, error) {
	conn, err := p.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var stats store.Stats

	err = conn.QueryRowContext(ctx, p.q.getStats).Scan(
		&stats.PendingTxs,
		&stats.ConfirmedTxs,
		&stats.AffectedTxs,
		&stats.Blocks,
		&stats.ChainTip,
	)
	if err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return &stats, nil
}
