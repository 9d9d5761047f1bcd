package config

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

type ChainStateConfig struct {
	LogLevel               string                 `mapstructure:"logLevel"`
	LogFormat              string                 `mapstructure:"logFormat"`
	ProfilerAddr           string                 `mapstructure:"profilerAddr"`
	HealthServerListenAddr string                 `mapstructure:"healthServerListenAddr"`
	GrpcMessageSize        int                    `mapstructure:"grpcMessageSize"`
	Prometheus             *PrometheusConfig      `mapstructure:"prometheus"`
	Tracing                *TracingConfig         `mapstructure:"tracing"`
	Db                     *DbConfig              `mapstructure:"db"`
	Cache                  *CacheConfig           `mapstructure:"cache"`
	Engine                 *EngineConfig          `mapstructure:"engine"`
	MessageQueue           *MessageQueueConfig    `mapstructure:"mq"`
	ConfirmedExpiry        *ConfirmedExpiryConfig `mapstructure:"confirmedExpiry"`
}

type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Addr     string `mapstructure:"addr"`
}

type TracingConfig struct {
	Enabled            bool                 `mapstructure:"enabled"`
	DialAddr           string               `mapstructure:"dialAddr"`
	Sample             int                  `mapstructure:"sample"`
	Attributes         map[string]string    `mapstructure:"attributes"`
	KeyValueAttributes []attribute.KeyValue `mapstructure:"-"`
}

type DbConfig struct {
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host                   string        `mapstructure:"host"`
	Port                   int           `mapstructure:"port"`
	Name                   string        `mapstructure:"name"`
	User                   string        `mapstructure:"user"`
	Password               string        `mapstructure:"password"`
	SslMode                string        `mapstructure:"sslMode"`
	MaxIdleConns           int           `mapstructure:"maxIdleConns"`
	MaxOpenConns           int           `mapstructure:"maxOpenConns"`
	AcquireTimeout         time.Duration `mapstructure:"acquireTimeout"`
	BlockTable             string        `mapstructure:"blockTable"`
	TransactionTable       string        `mapstructure:"transactionTable"`
	IsolationLevel         string        `mapstructure:"isolationLevel"`
	RequiredIsolationLevel string        `mapstructure:"requiredIsolationLevel"`
	EnforceIsolationLevel  bool          `mapstructure:"enforceIsolationLevel"`
}

type CacheConfig struct {
	ConfirmedTxs       int    `mapstructure:"confirmedTxs"`
	PendingTxs         int    `mapstructure:"pendingTxs"`
	Blocks             int    `mapstructure:"blocks"`
	OrphanInvalidation string `mapstructure:"orphanInvalidation"`
}

type EngineConfig struct {
	SerializeMutations bool          `mapstructure:"serializeMutations"`
	LockStripes        int           `mapstructure:"lockStripes"`
	StatsInterval      time.Duration `mapstructure:"statsInterval"`
}

type MessageQueueConfig struct {
	URL           string        `mapstructure:"url"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	SubjectPrefix string        `mapstructure:"subjectPrefix"`
	QueueGroup    string        `mapstructure:"queueGroup"`
	Workers       int           `mapstructure:"workers"`
	QueueSize     int           `mapstructure:"queueSize"`
	MaxRetries    uint64        `mapstructure:"maxRetries"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
	DedupWindow   time.Duration `mapstructure:"dedupWindow"`
}

type ConfirmedExpiryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Interval        time.Duration `mapstructure:"interval"`
	RetentionBlocks uint64        `mapstructure:"retentionBlocks"`
}
