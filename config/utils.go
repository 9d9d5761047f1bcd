package config

import (
	"database/sql"
	"fmt"
	"strings"
)

var isolationLevels = map[string]sql.IsolationLevel{
	"read committed":  sql.LevelReadCommitted,
	"repeatable read": sql.LevelRepeatableRead,
	"serializable":    sql.LevelSerializable,
}

// DSN returns the connection string of the configured database.
func (p *PostgresConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		p.User, p.Password, p.Name, p.Host, p.Port, p.SslMode)
}

// SQLIsolationLevel maps the configured level name to the isolation level mutating store operations run at.
func (p *PostgresConfig) SQLIsolationLevel() (sql.IsolationLevel, error) {
	level, found := isolationLevels[strings.ToLower(strings.TrimSpace(p.IsolationLevel))]
	if !found {
		return sql.LevelDefault, fmt.Errorf("unsupported isolation level %q", p.IsolationLevel)
	}

	return level, nil
}

func (c *ChainStateConfig) IsTracingEnabled() bool {
	return c.Tracing != nil && c.Tracing.Enabled
}

func (p *PrometheusConfig) IsEnabled() bool {
	return p != nil && p.Enabled && p.Addr != "" && p.Endpoint != ""
}
