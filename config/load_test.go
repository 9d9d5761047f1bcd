package config

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func Test_Load(t *testing.T) {
	t.Run("default load", func(t *testing.T) {
		// given
		expectedConfig := getDefaultChainStateConfig()

		// when
		actualConfig, err := Load()
		require.NoError(t, err, "error loading config")

		// then
		assert.Equal(t, expectedConfig.LogLevel, actualConfig.LogLevel)
		assert.Equal(t, expectedConfig.HealthServerListenAddr, actualConfig.HealthServerListenAddr)
		assert.Equal(t, expectedConfig.Prometheus, actualConfig.Prometheus)
		assert.Equal(t, expectedConfig.Db, actualConfig.Db)
		assert.Equal(t, expectedConfig.Cache, actualConfig.Cache)
		assert.Equal(t, expectedConfig.Engine, actualConfig.Engine)
		assert.Equal(t, expectedConfig.MessageQueue, actualConfig.MessageQueue)
		assert.Equal(t, expectedConfig.ConfirmedExpiry, actualConfig.ConfirmedExpiry)
		assert.Empty(t, actualConfig.Tracing.KeyValueAttributes)
	})

	t.Run("partial file override", func(t *testing.T) {
		// given
		expectedConfig := getDefaultChainStateConfig()

		// when
		actualConfig, err := Load("./test_files/")
		require.NoError(t, err, "error loading config")

		// then
		// verify not overridden default values
		assert.Equal(t, expectedConfig.GrpcMessageSize, actualConfig.GrpcMessageSize)
		assert.Equal(t, expectedConfig.Db.Postgres.MaxOpenConns, actualConfig.Db.Postgres.MaxOpenConns)
		assert.Equal(t, expectedConfig.Cache.ConfirmedTxs, actualConfig.Cache.ConfirmedTxs)
		assert.Equal(t, expectedConfig.MessageQueue.Workers, actualConfig.MessageQueue.Workers)

		// verify correct override
		assert.Equal(t, "DEBUG", actualConfig.LogLevel)
		assert.Equal(t, "json", actualConfig.LogFormat)
		assert.Equal(t, "db", actualConfig.Db.Postgres.Host)
		assert.Equal(t, 5433, actualConfig.Db.Postgres.Port)
		assert.Equal(t, "eth_blocks", actualConfig.Db.Postgres.BlockTable)
		assert.Equal(t, "eth_transactions", actualConfig.Db.Postgres.TransactionTable)
		assert.Equal(t, 5000, actualConfig.Cache.PendingTxs)
		assert.Equal(t, "lazy", actualConfig.Cache.OrphanInvalidation)
		assert.True(t, actualConfig.Engine.SerializeMutations)
		assert.Equal(t, "eth.mainnet", actualConfig.MessageQueue.SubjectPrefix)
		assert.Equal(t, 250*time.Millisecond, actualConfig.MessageQueue.RetryInterval)
		assert.True(t, actualConfig.ConfirmedExpiry.Enabled)
		assert.Equal(t, time.Minute, actualConfig.ConfirmedExpiry.Interval)
		assert.Equal(t, uint64(5000), actualConfig.ConfirmedExpiry.RetentionBlocks)
		assert.True(t, actualConfig.IsTracingEnabled())
		assert.Equal(t, "http://tracing:4317", actualConfig.Tracing.DialAddr)
		assert.Equal(t, []attribute.KeyValue{attribute.String("network", "mainnet")}, actualConfig.Tracing.KeyValueAttributes)

		level, err := actualConfig.Db.Postgres.SQLIsolationLevel()
		require.NoError(t, err)
		assert.Equal(t, sql.LevelSerializable, level)
	})

	t.Run("environment override", func(t *testing.T) {
		// given
		t.Setenv("CHAINSTATE_LOGLEVEL", "ERROR")
		t.Setenv("CHAINSTATE_MQ_URL", "nats://other:4222")
		t.Setenv("CHAINSTATE_CACHE_BLOCKS", "42")
		t.Setenv("CHAINSTATE_DB_POSTGRES_HOST", "env-db")

		// when
		actualConfig, err := Load("./test_files/")
		require.NoError(t, err, "error loading config")

		// then
		assert.Equal(t, "ERROR", actualConfig.LogLevel)
		assert.Equal(t, "nats://other:4222", actualConfig.MessageQueue.URL)
		assert.Equal(t, 42, actualConfig.Cache.Blocks)
		assert.Equal(t, "env-db", actualConfig.Db.Postgres.Host)
	})

	t.Run("missing directory", func(t *testing.T) {
		// when
		_, err := Load("./does_not_exist/")

		// then
		require.ErrorIs(t, err, ErrConfigPath)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		// when
		_, err := Load("./test_files/config.yaml")

		// then
		require.ErrorIs(t, err, ErrConfigPath)
	})
}

func TestDumpConfig(t *testing.T) {
	// given
	loaded, err := Load("./test_files/")
	require.NoError(t, err)

	dir := t.TempDir()

	// when
	err = DumpConfig(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)

	reloaded, err := Load(dir)
	require.NoError(t, err)

	// then
	assert.Equal(t, loaded, reloaded)
}
