package postgresql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

func TestNewStatements(t *testing.T) {
	tt := []struct {
		name             string
		blockTable       string
		transactionTable string

		expectedErr error
	}{
		{
			name:             "default tables",
			blockTable:       DefaultBlockTable,
			transactionTable: DefaultTransactionTable,
		},
		{
			name:             "prefixed tables",
			blockTable:       "eth_blocks",
			transactionTable: "eth_transactions_2",
		},
		{
			name:             "statement in block table",
			blockTable:       "blocks; DROP TABLE transactions",
			transactionTable: DefaultTransactionTable,

			expectedErr: store.ErrInvalidIdentifier,
		},
		{
			name:             "quoted transaction table",
			blockTable:       DefaultBlockTable,
			transactionTable: `"transactions"`,

			expectedErr: store.ErrInvalidIdentifier,
		},
		{
			name:             "upper case",
			blockTable:       "Blocks",
			transactionTable: DefaultTransactionTable,

			expectedErr: store.ErrInvalidIdentifier,
		},
		{
			name:             "empty",
			blockTable:       "",
			transactionTable: DefaultTransactionTable,

			expectedErr: store.ErrInvalidIdentifier,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			q, err := newStatements(tc.blockTable, tc.transactionTable)

			// then
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			require.Contains(t, q.insertBlock, fmt.Sprintf(`INSERT INTO "%s"`, tc.blockTable))
			require.Contains(t, q.deleteConfirmed, fmt.Sprintf(`FROM "%s"`, tc.blockTable))
			require.Contains(t, q.createTransactionIndex, fmt.Sprintf(`"%s_height"`, tc.transactionTable))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("invalid table", func(t *testing.T) {
		// when
		_, err := New("host=localhost", 1, 1, WithTables("blocks", "tx-table"))

		// then
		require.ErrorIs(t, err, store.ErrInvalidIdentifier)
	})
}

func TestClassifyError(t *testing.T) {
	tt := []struct {
		name string
		err  error

		expectedErr error
		transient   bool
	}{
		{
			name:        "unique violation",
			err:         &pgconn.PgError{Code: "23505"},
			expectedErr: store.ErrDuplicateKey,
		},
		{
			name:        "serialization failure",
			err:         &pgconn.PgError{Code: "40001"},
			expectedErr: store.ErrSerializationFailure,
			transient:   true,
		},
		{
			name:        "deadlock",
			err:         fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}),
			expectedErr: store.ErrSerializationFailure,
			transient:   true,
		},
		{
			name: "other",
			err:  errors.New("some error"),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			err := classifyError(tc.err)

			// then
			require.ErrorIs(t, err, tc.err)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
			}
			require.Equal(t, tc.transient, store.IsTransient(err))
		})
	}
}

func TestToInt4(t *testing.T) {
	v, err := toInt4("timestamp", 1_700_000_000)
	require.NoError(t, err)
	require.Equal(t, int32(1_700_000_000), v)

	_, err = toInt4("timestamp", 1<<31)
	require.ErrorIs(t, err, store.ErrValueOutOfRange)

	_, err = heightToInt4(1 << 32)
	require.ErrorIs(t, err, store.ErrValueOutOfRange)

	_, err = safecastRetention(1 << 63)
	require.ErrorIs(t, err, store.ErrValueOutOfRange)
}
