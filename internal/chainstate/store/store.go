package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound                  = errors.New("not found")
	ErrDuplicateKey              = errors.New("duplicate key value violates unique constraint")
	ErrSerializationFailure      = errors.New("could not serialize access due to concurrent update")
	ErrUnableToGetSQLConnection  = errors.New("unable to get or create sql connection")
	ErrUnableToBeginTransaction  = errors.New("unable to begin transaction")
	ErrUnableToPrepareStatement  = errors.New("unable to prepare statement")
	ErrUnableToCommitTransaction = errors.New("unable to commit transaction")
	ErrFailedToOpenDB            = errors.New("failed to open postgres database")
	ErrFailedToCreateSchema      = errors.New("failed to create schema")
	ErrFailedToInsertBlock       = errors.New("failed to insert block")
	ErrFailedToConfirmTxs        = errors.New("failed to confirm transactions")
	ErrFailedToInsertTransaction = errors.New("failed to insert transaction")
	ErrFailedToUpdateTransaction = errors.New("failed to update transaction")
	ErrUnableToDeleteRows        = errors.New("unable to delete rows")
	ErrFailedToOrphanBlock       = errors.New("failed to orphan block")
	ErrFailedToGetRows           = errors.New("failed to get rows")
	ErrValueOutOfRange           = errors.New("value out of range for column")
	ErrInvalidIdentifier         = errors.New("invalid table identifier")
)

// IsTransient reports whether err is an infrastructure failure which may succeed if the same event is
// delivered again. Constraint violations and malformed input are never transient. A failed commit is not
// transient since the server may have committed before the acknowledgement was lost, unless it failed on
// serialization, which rolls the transaction back.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrValueOutOfRange) {
		return false
	}

	return errors.Is(err, ErrUnableToGetSQLConnection) ||
		errors.Is(err, ErrSerializationFailure) ||
		errors.Is(err, ErrUnableToBeginTransaction)
}

type ChainStateStore interface {
	EnsureSchema(ctx context.Context) error
	IsolationLevel(ctx context.Context) (string, error)

	InsertBlock(ctx context.Context, block *Block, txHashes [][]byte) ([]TxState, error)
	InsertTransaction(ctx context.Context, tx *Transaction) error
	UpdatePendingLastSeen(ctx context.Context, hash []byte, lastTimestamp int64) (*TxState, error)
	DeleteTransactions(ctx context.Context, hashes [][]byte) ([][]byte, error)
	DeleteConfirmedTransactions(ctx context.Context, retentionBlocks uint64) ([][]byte, error)
	OrphanBlock(ctx context.Context, height uint64, hash []byte) ([]TxState, error)

	GetConfirmedTransactions(ctx context.Context, limit int) ([]TxState, error)
	GetPendingTransactions(ctx context.Context, limit int) ([]TxState, error)
	GetBlocks(ctx context.Context, limit int) ([]BlockState, error)
	GetChainTip(ctx context.Context) (*BlockState, error)
	GetStats(ctx context.Context) (*Stats, error)

	Ping(ctx context.Context) error
	Close() error
}
