package config

import (
	"time"
)

func getDefaultChainStateConfig() *ChainStateConfig {
	return &ChainStateConfig{
		LogLevel:               "INFO",
		LogFormat:              "text",
		ProfilerAddr:           "",
		HealthServerListenAddr: "localhost:8005",
		GrpcMessageSize:        100000000,
		Prometheus:             getDefaultPrometheusConfig(),
		Tracing:                getDefaultTracingConfig(),
		Db:                     getDefaultDbConfig(),
		Cache:                  getDefaultCacheConfig(),
		Engine:                 getDefaultEngineConfig(),
		MessageQueue:           getDefaultMessageQueueConfig(),
		ConfirmedExpiry:        getDefaultConfirmedExpiryConfig(),
	}
}

func getDefaultPrometheusConfig() *PrometheusConfig {
	return &PrometheusConfig{
		Enabled:  false,
		Endpoint: "/metrics",
		Addr:     ":2112",
	}
}

func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		Enabled:  false,
		DialAddr: "http://localhost:4317",
		Sample:   100,
	}
}

func getDefaultDbConfig() *DbConfig {
	return &DbConfig{
		Postgres: &PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			Name:                   "chainstate",
			User:                   "chainstate",
			Password:               "chainstate",
			SslMode:                "disable",
			MaxIdleConns:           10,
			MaxOpenConns:           80,
			AcquireTimeout:         10 * time.Second,
			BlockTable:             "blocks",
			TransactionTable:       "transactions",
			IsolationLevel:         "repeatable read",
			RequiredIsolationLevel: "repeatable read",
			EnforceIsolationLevel:  false,
		},
	}
}

func getDefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		ConfirmedTxs:       100000,
		PendingTxs:         100000,
		Blocks:             1000,
		OrphanInvalidation: "eager",
	}
}

func getDefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		SerializeMutations: false,
		LockStripes:        256,
		StatsInterval:      60 * time.Second,
	}
}

func getDefaultMessageQueueConfig() *MessageQueueConfig {
	return &MessageQueueConfig{
		URL:           "nats://localhost:4222",
		SubjectPrefix: "chainstate",
		QueueGroup:    "chainstate",
		Workers:       16,
		QueueSize:     1000,
		MaxRetries:    5,
		RetryInterval: 100 * time.Millisecond,
		DedupWindow:   10 * time.Minute,
	}
}

func getDefaultConfirmedExpiryConfig() *ConfirmedExpiryConfig {
	return &ConfirmedExpiryConfig{
		Enabled:         false,
		Interval:        10 * time.Minute,
		RetentionBlocks: 100000,
	}
}
