package postgresql

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txsync/chainstate/internal/chainstate"
	"github.com/txsync/chainstate/internal/chainstate/store"
	testutils "github.com/txsync/chainstate/internal/test_utils"
)

var dbInfo string

type transactionRow struct {
	Hash          []byte        `db:"hash"`
	Height        sql.NullInt64 `db:"height"`
	Timestamp     int64         `db:"timestamp"`
	LastTimestamp int64         `db:"last_timestamp"`
	Affected      string        `db:"affected"`
}

type blockRow struct {
	Hash         []byte `db:"hash"`
	Height       int64  `db:"height"`
	PreviousHash []byte `db:"previous_hash"`
	Timestamp    int64  `db:"timestamp"`
}

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	os.Exit(testmain(m))
}

func testmain(m *testing.M) int {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("failed to create pool: %v", err)
		return 1
	}

	port := "5437"
	resource, connStr, err := testutils.RunPostgresql(pool, port)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer func() {
		err = pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge pool: %v", err)
		}
	}()

	err = pool.Retry(func() error {
		postgresDB, err := New(connStr, 1, 1)
		if err != nil {
			return err
		}
		defer postgresDB.Close()

		return postgresDB.EnsureSchema(context.Background())
	})
	if err != nil {
		log.Printf("failed to create schema: %v", err)
		return 1
	}

	dbInfo = connStr
	return m.Run()
}

func hashBytes(b byte) []byte {
	return testutils.Hash(b).Bytes()
}

func openSQLX(t *testing.T) *sqlx.DB {
	t.Helper()

	d, err := sqlx.Open("postgres", dbInfo)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = d.Close()
	})

	return d
}

func loadFixtures(t *testing.T, d *sqlx.DB, path string) {
	t.Helper()

	testutils.LoadFixtures(t, d.DB, path)
}

func pruneTables(t *testing.T, d *sqlx.DB) {
	t.Helper()

	testutils.PruneTables(t, d.DB, DefaultBlockTable, DefaultTransactionTable)
}

func getTransaction(t *testing.T, d *sqlx.DB, hash []byte) *transactionRow {
	t.Helper()

	var row transactionRow
	err := d.Get(&row, "SELECT hash, height, timestamp, last_timestamp, affected FROM transactions WHERE hash = $1", hash)
	if err != nil {
		require.ErrorIs(t, err, sql.ErrNoRows)
		return nil
	}

	return &row
}

func countRows(t *testing.T, d *sqlx.DB, table string) int {
	t.Helper()

	var count int
	require.NoError(t, d.Get(&count, "SELECT COUNT(*) FROM "+table))

	return count
}

func TestPostgresDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	postgresDB, err := New(dbInfo, 10, 10)
	require.NoError(t, err)
	defer postgresDB.Close()

	d := openSQLX(t)

	t.Run("ensure schema is idempotent", func(t *testing.T) {
		// when
		err := postgresDB.EnsureSchema(ctx)

		// then
		require.NoError(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, postgresDB.Ping(ctx))
	})

	t.Run("isolation level", func(t *testing.T) {
		tt := []struct {
			name    string
			level   sql.IsolationLevel
			enforce bool

			expectedLevel string
			expectedWarn  bool
			expectedErr   error
		}{
			{
				name:  "configured level stronger than server default",
				level: sql.LevelRepeatableRead,

				expectedLevel: "repeatable read",
			},
			{
				name:    "serializable - enforced",
				level:   sql.LevelSerializable,
				enforce: true,

				expectedLevel: "serializable",
			},
			{
				name:  "read committed",
				level: sql.LevelReadCommitted,

				expectedLevel: "read committed",
				expectedWarn:  true,
			},
			{
				name:    "read committed - enforced",
				level:   sql.LevelReadCommitted,
				enforce: true,

				expectedLevel: "read committed",
				expectedErr:   chainstate.ErrIsolationLevelTooWeak,
			},
		}

		var serverDefault string
		require.NoError(t, d.Get(&serverDefault, "SHOW transaction_isolation"))
		require.Equal(t, "read committed", serverDefault)

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				// given
				sut, err := New(dbInfo, 1, 1, WithIsolationLevel(tc.level))
				require.NoError(t, err)
				defer sut.Close()

				logs := &bytes.Buffer{}
				logger := slog.New(slog.NewTextHandler(logs, nil))

				// when
				level, err := sut.IsolationLevel(ctx)
				require.NoError(t, err)
				checkErr := chainstate.CheckIsolationLevel(ctx, logger, sut, chainstate.DefaultRequiredIsolationLevel, tc.enforce)

				// then
				require.Equal(t, tc.expectedLevel, level)
				if tc.expectedErr != nil {
					require.ErrorIs(t, checkErr, tc.expectedErr)
				} else {
					require.NoError(t, checkErr)
				}
				require.Equal(t, tc.expectedWarn, strings.Contains(logs.String(), "level=WARN"))
			})
		}
	})

	t.Run("pool exhausted", func(t *testing.T) {
		// given
		sut, err := New(dbInfo, 1, 1, WithAcquireTimeout(50*time.Millisecond))
		require.NoError(t, err)
		defer sut.Close()

		held, err := sut.db.Conn(ctx)
		require.NoError(t, err)
		defer held.Close()

		calls := map[string]func() error{
			"EnsureSchema": func() error {
				return sut.EnsureSchema(ctx)
			},
			"IsolationLevel": func() error {
				_, err := sut.IsolationLevel(ctx)
				return err
			},
			"GetConfirmedTransactions": func() error {
				_, err := sut.GetConfirmedTransactions(ctx, 10)
				return err
			},
			"GetPendingTransactions": func() error {
				_, err := sut.GetPendingTransactions(ctx, 10)
				return err
			},
			"GetBlocks": func() error {
				_, err := sut.GetBlocks(ctx, 10)
				return err
			},
			"GetChainTip": func() error {
				_, err := sut.GetChainTip(ctx)
				return err
			},
			"GetStats": func() error {
				_, err := sut.GetStats(ctx)
				return err
			},
		}

		for name, call := range calls {
			// when
			err := call()

			// then
			require.ErrorIs(t, err, store.ErrUnableToGetSQLConnection, name)
			require.True(t, store.IsTransient(err), name)
		}
	})

	t.Run("insert transaction", func(t *testing.T) {
		// given
		defer pruneTables(t, d)

		// when
		err := postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1000, Affected: true})
		require.NoError(t, err)
		err = postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xcc), Timestamp: 1001})
		require.NoError(t, err)

		// then
		bb := getTransaction(t, d, hashBytes(0xbb))
		require.NotNil(t, bb)
		assert.False(t, bb.Height.Valid)
		assert.Equal(t, int64(1000), bb.Timestamp)
		assert.Equal(t, int64(1000), bb.LastTimestamp)
		assert.Equal(t, "1", bb.Affected)

		cc := getTransaction(t, d, hashBytes(0xcc))
		require.NotNil(t, cc)
		assert.Equal(t, "0", cc.Affected)
	})

	t.Run("insert transaction - duplicate", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		require.NoError(t, postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1000}))

		// when
		err := postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 2000})

		// then
		require.ErrorIs(t, err, store.ErrDuplicateKey)
		require.False(t, store.IsTransient(err))

		bb := getTransaction(t, d, hashBytes(0xbb))
		require.Equal(t, int64(1000), bb.LastTimestamp)
	})

	t.Run("insert transaction - timestamp out of range", func(t *testing.T) {
		// when
		err := postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1 << 40})

		// then
		require.ErrorIs(t, err, store.ErrValueOutOfRange)
		require.Equal(t, 0, countRows(t, d, DefaultTransactionTable))
	})

	t.Run("insert block", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/insert_block")

		block := &store.Block{
			Hash:         hashBytes(0xaa),
			Height:       100,
			PreviousHash: hashBytes(0xa9),
			Timestamp:    1000,
		}

		// when
		confirmed, err := postgresDB.InsertBlock(ctx, block, [][]byte{hashBytes(0xbb), hashBytes(0xcc), hashBytes(0xee)})

		// then
		require.NoError(t, err)
		require.Len(t, confirmed, 2)
		for _, tx := range confirmed {
			require.NotNil(t, tx.Height)
			assert.Equal(t, uint64(100), *tx.Height)
		}
		assert.ElementsMatch(t,
			[]int64{950, 810},
			[]int64{confirmed[0].LastTimestamp, confirmed[1].LastTimestamp},
		)

		var blocks []blockRow
		require.NoError(t, d.Select(&blocks, "SELECT hash, height, previous_hash, timestamp FROM blocks WHERE hash = $1", hashBytes(0xaa)))
		require.Len(t, blocks, 1)
		assert.Equal(t, int64(100), blocks[0].Height)
		assert.Equal(t, hashBytes(0xa9), blocks[0].PreviousHash)
		assert.Equal(t, int64(1000), blocks[0].Timestamp)

		// pending and previously confirmed rows are both confirmed at the new height
		for _, hash := range [][]byte{hashBytes(0xbb), hashBytes(0xcc)} {
			row := getTransaction(t, d, hash)
			require.NotNil(t, row)
			assert.Equal(t, int64(100), row.Height.Int64)
			assert.Equal(t, int64(1000), row.Timestamp)
		}

		dd := getTransaction(t, d, hashBytes(0xdd))
		require.False(t, dd.Height.Valid)

		// untracked hashes do not create rows
		require.Nil(t, getTransaction(t, d, hashBytes(0xee)))
		require.Equal(t, 3, countRows(t, d, DefaultTransactionTable))
	})

	t.Run("insert block - without transactions", func(t *testing.T) {
		// given
		defer pruneTables(t, d)

		// when
		confirmed, err := postgresDB.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xaa), Height: 100, Timestamp: 1000}, nil)

		// then
		require.NoError(t, err)
		require.Empty(t, confirmed)
		require.Equal(t, 1, countRows(t, d, DefaultBlockTable))
	})

	t.Run("insert block - duplicate", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/insert_block")

		// when
		_, err := postgresDB.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xa9), Height: 120, Timestamp: 1200}, [][]byte{hashBytes(0xbb)})

		// then
		require.ErrorIs(t, err, store.ErrDuplicateKey)

		// the confirmation is rolled back together with the block insert
		bb := getTransaction(t, d, hashBytes(0xbb))
		require.False(t, bb.Height.Valid)
	})

	t.Run("insert block - height out of range", func(t *testing.T) {
		// when
		_, err := postgresDB.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xaa), Height: 1 << 40, Timestamp: 1000}, nil)

		// then
		require.ErrorIs(t, err, store.ErrValueOutOfRange)
		require.Equal(t, 0, countRows(t, d, DefaultBlockTable))
	})

	t.Run("update pending last seen", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/update_pending")

		// when
		state, err := postgresDB.UpdatePendingLastSeen(ctx, hashBytes(0xbb), 1200)

		// then
		require.NoError(t, err)
		require.True(t, state.Pending())
		require.Equal(t, int64(1200), state.LastTimestamp)

		bb := getTransaction(t, d, hashBytes(0xbb))
		assert.False(t, bb.Height.Valid)
		assert.Equal(t, int64(900), bb.Timestamp)
		assert.Equal(t, int64(1200), bb.LastTimestamp)

		// when
		state, err = postgresDB.UpdatePendingLastSeen(ctx, hashBytes(0xcc), 1300)

		// then height is untouched
		require.NoError(t, err)
		require.NotNil(t, state.Height)
		require.Equal(t, uint64(90), *state.Height)

		cc := getTransaction(t, d, hashBytes(0xcc))
		assert.Equal(t, int64(90), cc.Height.Int64)
		assert.Equal(t, int64(1300), cc.LastTimestamp)
	})

	t.Run("update pending last seen - unknown hash", func(t *testing.T) {
		// when
		_, err := postgresDB.UpdatePendingLastSeen(ctx, hashBytes(0xff), 1200)

		// then
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete transactions", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/delete_transactions")

		// when
		deleted, err := postgresDB.DeleteTransactions(ctx, [][]byte{hashBytes(0xbb), hashBytes(0xdd), hashBytes(0xff)})

		// then
		require.NoError(t, err)
		require.ElementsMatch(t, [][]byte{hashBytes(0xbb), hashBytes(0xdd)}, deleted)
		require.Equal(t, 1, countRows(t, d, DefaultTransactionTable))
		require.NotNil(t, getTransaction(t, d, hashBytes(0xcc)))
	})

	t.Run("delete transactions - empty set", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/delete_transactions")

		// when
		deleted, err := postgresDB.DeleteTransactions(ctx, nil)

		// then
		require.NoError(t, err)
		require.Empty(t, deleted)
		require.Equal(t, 3, countRows(t, d, DefaultTransactionTable))
	})

	t.Run("delete confirmed transactions", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/delete_confirmed")

		// when
		deleted, err := postgresDB.DeleteConfirmedTransactions(ctx, 100)

		// then
		require.NoError(t, err)
		require.ElementsMatch(t, [][]byte{hashBytes(0x01), hashBytes(0x03)}, deleted)

		// affected transaction at tip - retention - 1 is retained
		require.NotNil(t, getTransaction(t, d, hashBytes(0x02)))
		require.NotNil(t, getTransaction(t, d, hashBytes(0x04)))
		require.NotNil(t, getTransaction(t, d, hashBytes(0x05)))
		require.NotNil(t, getTransaction(t, d, hashBytes(0x06)))

		// when
		deleted, err = postgresDB.DeleteConfirmedTransactions(ctx, 100)

		// then
		require.NoError(t, err)
		require.Empty(t, deleted)
		require.Equal(t, 4, countRows(t, d, DefaultTransactionTable))
	})

	t.Run("delete confirmed transactions - no blocks", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		require.NoError(t, postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1000}))

		// when
		deleted, err := postgresDB.DeleteConfirmedTransactions(ctx, 0)

		// then
		require.NoError(t, err)
		require.Empty(t, deleted)
	})

	t.Run("orphan block", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/orphan_block")

		// when
		reverted, err := postgresDB.OrphanBlock(ctx, 100, hashBytes(0xaa))

		// then
		require.NoError(t, err)
		require.Len(t, reverted, 2)
		for _, tx := range reverted {
			require.True(t, tx.Pending())
		}
		require.Equal(t, 1, countRows(t, d, DefaultBlockTable))

		bb := getTransaction(t, d, hashBytes(0xbb))
		assert.False(t, bb.Height.Valid)
		assert.Equal(t, int64(1000), bb.Timestamp)
		assert.Equal(t, int64(950), bb.LastTimestamp)

		cc := getTransaction(t, d, hashBytes(0xcc))
		assert.False(t, cc.Height.Valid)
		assert.Equal(t, "1", cc.Affected)

		dd := getTransaction(t, d, hashBytes(0xdd))
		assert.Equal(t, int64(99), dd.Height.Int64)
	})

	t.Run("orphan block - nothing at height", func(t *testing.T) {
		// given
		defer pruneTables(t, d)

		// when
		reverted, err := postgresDB.OrphanBlock(ctx, 500, hashBytes(0xaa))

		// then
		require.NoError(t, err)
		require.Empty(t, reverted)
	})

	t.Run("orphan and re-confirm", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		require.NoError(t, postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1000}))
		require.NoError(t, postgresDB.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xcc), Timestamp: 1000}))
		included := [][]byte{hashBytes(0xbb), hashBytes(0xcc)}

		_, err := postgresDB.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xaa), Height: 100, Timestamp: 1000}, included)
		require.NoError(t, err)

		// when
		_, err = postgresDB.OrphanBlock(ctx, 100, hashBytes(0xaa))
		require.NoError(t, err)
		confirmed, err := postgresDB.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xab), Height: 101, Timestamp: 1010}, included)
		require.NoError(t, err)

		// then
		require.Len(t, confirmed, 2)
		for _, hash := range included {
			row := getTransaction(t, d, hash)
			assert.Equal(t, int64(101), row.Height.Int64)
			assert.Equal(t, int64(1010), row.Timestamp)
		}

		var count int
		require.NoError(t, d.Get(&count, "SELECT COUNT(*) FROM blocks WHERE hash = $1", hashBytes(0xaa)))
		require.Zero(t, count)
	})

	t.Run("get cache rows", func(t *testing.T) {
		// given
		defer pruneTables(t, d)
		loadFixtures(t, d, "fixtures/get_cache_rows")

		// when
		confirmed, err := postgresDB.GetConfirmedTransactions(ctx, 3)

		// then
		require.NoError(t, err)
		require.Len(t, confirmed, 3)
		assert.Equal(t, hashBytes(0x04), confirmed[0].Hash)
		assert.Equal(t, hashBytes(0x03), confirmed[1].Hash)
		assert.Equal(t, hashBytes(0x02), confirmed[2].Hash)
		assert.Equal(t, uint64(102), *confirmed[2].Height)
		assert.Equal(t, int64(1015), confirmed[2].LastTimestamp)

		// when
		pending, err := postgresDB.GetPendingTransactions(ctx, 10)

		// then
		require.NoError(t, err)
		require.Len(t, pending, 3)
		assert.Equal(t, hashBytes(0x12), pending[0].Hash)
		assert.Equal(t, hashBytes(0x13), pending[1].Hash)
		assert.Equal(t, hashBytes(0x11), pending[2].Hash)
		assert.True(t, pending[0].Pending())

		// when
		blocks, err := postgresDB.GetBlocks(ctx, 2)

		// then
		require.NoError(t, err)
		require.Equal(t, []store.BlockState{
			{Hash: hashBytes(0xa3), Height: 103},
			{Hash: hashBytes(0xa2), Height: 102},
		}, blocks)

		// when
		tip, err := postgresDB.GetChainTip(ctx)

		// then
		require.NoError(t, err)
		require.Equal(t, uint64(103), tip.Height)

		// when
		stats, err := postgresDB.GetStats(ctx)

		// then
		require.NoError(t, err)
		require.Equal(t, &store.Stats{
			PendingTxs:   3,
			ConfirmedTxs: 4,
			AffectedTxs:  1,
			Blocks:       3,
			ChainTip:     103,
		}, stats)
	})

	t.Run("get chain tip - no blocks", func(t *testing.T) {
		// when
		_, err := postgresDB.GetChainTip(ctx)

		// then
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("custom tables", func(t *testing.T) {
		// given
		custom, err := New(dbInfo, 2, 2, WithTables("chain_blocks", "chain_transactions"))
		require.NoError(t, err)
		defer custom.Close()

		require.NoError(t, custom.EnsureSchema(ctx))
		defer testutils.PruneTables(t, d.DB, "chain_blocks", "chain_transactions")

		// when
		err = custom.InsertTransaction(ctx, &store.Transaction{Hash: hashBytes(0xbb), Timestamp: 1000})
		require.NoError(t, err)
		confirmed, err := custom.InsertBlock(ctx, &store.Block{Hash: hashBytes(0xaa), Height: 7, Timestamp: 1000}, [][]byte{hashBytes(0xbb)})

		// then
		require.NoError(t, err)
		require.Len(t, confirmed, 1)
		require.Equal(t, 1, countRows(t, d, "chain_blocks"))
		require.Equal(t, 0, countRows(t, d, DefaultBlockTable))
	})
}
