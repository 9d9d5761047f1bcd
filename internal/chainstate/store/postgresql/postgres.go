package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // nolint: revive // required for postgres driver
	"go.opentelemetry.io/otel/attribute"

	"github.com/txsync/chainstate/internal/chainstate/store"
	"github.com/txsync/chainstate/internal/tracing"
)

const (
	postgresDriverName = "pgx"

	DefaultBlockTable       = "blocks"
	DefaultTransactionTable = "transactions"
)

type PostgreSQL struct {
	db                *sql.DB
	q                 statements
	blockTable        string
	transactionTable  string
	isolationLevel    sql.IsolationLevel
	acquireTimeout    time.Duration
	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

func WithTracer(attr ...attribute.KeyValue) func(s *PostgreSQL) {
	return func(p *PostgreSQL) {
		p.tracingEnabled = true
		p.tracingAttributes = tracing.CallerAttributes(p.tracingAttributes, attr...)
	}
}

// WithTables sets the names of the block and transaction relations. Names are configuration, never request input.
func WithTables(blockTable, transactionTable string) func(s *PostgreSQL) {
	return func(p *PostgreSQL) {
		p.blockTable = blockTable
		p.transactionTable = transactionTable
	}
}

// WithIsolationLevel sets the isolation level of the transaction every mutating operation runs in.
func WithIsolationLevel(level sql.IsolationLevel) func(s *PostgreSQL) {
	return func(p *PostgreSQL) {
		p.isolationLevel = level
	}
}

// WithAcquireTimeout bounds how long an operation waits for a free pooled connection.
func WithAcquireTimeout(d time.Duration) func(s *PostgreSQL) {
	return func(p *PostgreSQL) {
		p.acquireTimeout = d
	}
}

func New(dbInfo string, idleConns int, maxOpenConns int, opts ...func(postgreSQL *PostgreSQL)) (*PostgreSQL, error) {
	p := &PostgreSQL{
		blockTable:       DefaultBlockTable,
		transactionTable: DefaultTransactionTable,
		isolationLevel:   sql.LevelRepeatableRead,
	}
	for _, opt := range opts {
		opt(p)
	}

	q, err := newStatements(p.blockTable, p.transactionTable)
	if err != nil {
		return nil, err
	}
	p.q = q

	db, err := sql.Open(postgresDriverName, dbInfo)
	if err != nil {
		return nil, errors.Join(store.ErrFailedToOpenDB, err)
	}
	db.SetMaxIdleConns(idleConns)
	db.SetMaxOpenConns(maxOpenConns)

	p.db = db

	return p, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}

func (p *PostgreSQL) Ping(ctx context.Context) error {
	r, err := p.db.QueryContext(ctx, "SELECT 1;")
	if err != nil {
		return err
	}

	return r.Close()
}

// conn checks out one pooled connection, waiting at most acquireTimeout for a free one. The caller closes it.
func (p *PostgreSQL) conn(ctx context.Context) (*sql.Conn, error) {
	if p.acquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.acquireTimeout)
		defer cancel()
	}

	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, errors.Join(store.ErrUnableToGetSQLConnection, err)
	}

	return conn, nil
}

// withTx runs fn inside a transaction at the configured isolation level on one pooled connection and returns the
// connection to the pool on every path.
func (p *PostgreSQL) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	conn, err := p.conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{Isolation: p.isolationLevel})
	if err != nil {
		return errors.Join(store.ErrUnableToBeginTransaction, classifyError(err))
	}

	err = fn(tx)
	if err != nil {
		rollBackErr := tx.Rollback()
		if rollBackErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to rollback: %v", rollBackErr))
		}

		return classifyError(err)
	}

	err = tx.Commit()
	if err != nil {
		return errors.Join(store.ErrUnableToCommitTransaction, classifyError(err))
	}

	return nil
}

func prepare(ctx context.Context, tx *sql.Tx, query string) (*sql.Stmt, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return nil, errors.Join(store.ErrUnableToPrepareStatement, err)
	}

	return stmt, nil
}
