package store_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

func TestIsTransient(t *testing.T) {
	tt := []struct {
		name string
		err  error

		expected bool
	}{
		{
			name: "nil",
		},
		{
			name:     "pool exhausted",
			err:      errors.Join(store.ErrUnableToGetSQLConnection, errors.New("context deadline exceeded")),
			expected: true,
		},
		{
			name:     "begin failed",
			err:      errors.Join(store.ErrUnableToBeginTransaction, errors.New("connection reset")),
			expected: true,
		},
		{
			name:     "serialization failure",
			err:      errors.Join(store.ErrFailedToInsertBlock, store.ErrSerializationFailure),
			expected: true,
		},
		{
			name:     "serialization failure at commit",
			err:      errors.Join(store.ErrUnableToCommitTransaction, store.ErrSerializationFailure),
			expected: true,
		},
		{
			name: "commit outcome unknown",
			err:  errors.Join(store.ErrUnableToCommitTransaction, errors.New("unexpected EOF")),
		},
		{
			name: "duplicate key",
			err:  errors.Join(store.ErrFailedToInsertBlock, store.ErrDuplicateKey),
		},
		{
			name: "duplicate key after lost connection",
			err:  errors.Join(store.ErrUnableToGetSQLConnection, store.ErrDuplicateKey),
		},
		{
			name: "value out of range",
			err:  errors.Join(store.ErrFailedToInsertTransaction, store.ErrValueOutOfRange),
		},
		{
			name: "other",
			err:  errors.New("some error"),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			actual := store.IsTransient(tc.err)

			// then
			require.Equal(t, tc.expected, actual)
		})
	}
}
