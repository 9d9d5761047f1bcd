package postgresql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ccoveille/go-safecast"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation:
		return errors.Join(store.ErrDuplicateKey, err)
	case serializationFailure, deadlockDetected:
		return errors.Join(store.ErrSerializationFailure, err)
	}

	return err
}

func toInt4(column string, v int64) (int32, error) {
	i, err := safecast.ToInt32(v)
	if err != nil {
		return 0, errors.Join(store.ErrValueOutOfRange, fmt.Errorf("column %s: %w", column, err))
	}

	return i, nil
}

func heightToInt4(height uint64) (int32, error) {
	i, err := safecast.ToInt32(height)
	if err != nil {
		return 0, errors.Join(store.ErrValueOutOfRange, fmt.Errorf("column height: %w", err))
	}

	return i, nil
}

func parseTxStates(rows *sql.Rows, height *uint64) ([]store.TxState, error) {
	txs := make([]store.TxState, 0)

	for rows.Next() {
		var tx store.TxState
		if height != nil {
			h := *height
			tx.Height = &h
		}

		err := rows.Scan(&tx.Hash, &tx.LastTimestamp)
		if err != nil {
			return nil, errors.Join(store.ErrFailedToGetRows, err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return txs, nil
}

func parseHashes(rows *sql.Rows) ([][]byte, error) {
	hashes := make([][]byte, 0)

	for rows.Next() {
		var hash []byte

		err := rows.Scan(&hash)
		if err != nil {
			return nil, errors.Join(store.ErrFailedToGetRows, err)
		}

		hashes = append(hashes, hash)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(store.ErrFailedToGetRows, err)
	}

	return hashes, nil
}

func safecastRetention(retentionBlocks uint64) (int64, error) {
	i, err := safecast.ToInt64(retentionBlocks)
	if err != nil {
		return 0, errors.Join(store.ErrValueOutOfRange, fmt.Errorf("retention blocks: %w", err))
	}

	return i, nil
}
