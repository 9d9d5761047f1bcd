package postgresql

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/txsync/chainstate/internal/chainstate/store"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,55}$`)

// statements holds every query with the configured table identifiers bound in once at construction.
type statements struct {
	createBlockTable       string
	createBlockIndex       string
	createTransactionTable string
	createTransactionIndex string

	insertBlock        string
	confirmTxs         string
	insertTransaction  string
	updateLastSeen     string
	deleteTransactions string
	deleteConfirmed    string
	deleteBlock        string
	revertTxs          string

	getConfirmed string
	getPending   string
	getBlocks    string
	getChainTip  string
	getStats     string
}

func quoteIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", errors.Join(store.ErrInvalidIdentifier, fmt.Errorf("identifier: %q", name))
	}

	return pgx.Identifier{name}.Sanitize(), nil
}

func newStatements(blockTable, transactionTable string) (statements, error) {
	b, err := quoteIdentifier(blockTable)
	if err != nil {
		return statements{}, err
	}
	t, err := quoteIdentifier(transactionTable)
	if err != nil {
		return statements{}, err
	}
	bIdx := pgx.Identifier{blockTable + "_height"}.Sanitize()
	tIdx := pgx.Identifier{transactionTable + "_height"}.Sanitize()

	return statements{
		createBlockTable: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				height BIGINT DEFAULT NULL,
				hash BYTEA NOT NULL PRIMARY KEY,
				previous_hash BYTEA,
				timestamp INT4 DEFAULT 0
			)`, b),
		createBlockIndex: fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING BTREE (height DESC)`, bIdx, b),
		createTransactionTable: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				height INT4 DEFAULT NULL,
				hash BYTEA NOT NULL PRIMARY KEY,
				timestamp INT4 DEFAULT 0,
				last_timestamp INT4 DEFAULT 0,
				affected BIT(1) DEFAULT B'0'
			)`, t),
		createTransactionIndex: fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING BTREE (height DESC)`, tIdx, t),

		insertBlock: fmt.Sprintf(`INSERT INTO %s (hash, height, previous_hash, timestamp) VALUES ($1, $2, $3, $4)`, b),
		confirmTxs: fmt.Sprintf(`
			UPDATE %s SET height = $1, timestamp = $2
			WHERE hash = ANY($3)
			RETURNING hash, last_timestamp`, t),
		insertTransaction: fmt.Sprintf(`
			INSERT INTO %s (hash, timestamp, last_timestamp, affected)
			VALUES ($1, $2, $2, CASE WHEN $3::BOOLEAN THEN B'1' ELSE B'0' END)`, t),
		updateLastSeen: fmt.Sprintf(`
			UPDATE %s SET last_timestamp = $1
			WHERE hash = $2
			RETURNING height, last_timestamp`, t),
		deleteTransactions: fmt.Sprintf(`DELETE FROM %s WHERE hash = ANY($1) RETURNING hash`, t),
		deleteConfirmed: fmt.Sprintf(`
			DELETE FROM %s
			WHERE height < (SELECT MAX(height) FROM %s) - $1
				AND affected <> B'1'
			RETURNING hash`, t, b),
		deleteBlock: fmt.Sprintf(`DELETE FROM %s WHERE hash = $1`, b),
		revertTxs: fmt.Sprintf(`
			UPDATE %s SET height = NULL
			WHERE height = $1
			RETURNING hash, last_timestamp`, t),

		getConfirmed: fmt.Sprintf(`
			SELECT hash, height, last_timestamp FROM %s
			WHERE height IS NOT NULL
			ORDER BY height DESC, last_timestamp DESC, hash DESC
			LIMIT $1`, t),
		getPending: fmt.Sprintf(`
			SELECT hash, last_timestamp FROM %s
			WHERE height IS NULL
			ORDER BY last_timestamp DESC, hash DESC
			LIMIT $1`, t),
		getBlocks:   fmt.Sprintf(`SELECT hash, height FROM %s ORDER BY height DESC, hash DESC LIMIT $1`, b),
		getChainTip: fmt.Sprintf(`SELECT hash, height FROM %s ORDER BY height DESC, hash DESC LIMIT 1`, b),
		getStats: fmt.Sprintf(`
			SELECT
				(SELECT COUNT(*) FROM %[1]s WHERE height IS NULL),
				(SELECT COUNT(*) FROM %[1]s WHERE height IS NOT NULL),
				(SELECT COUNT(*) FROM %[1]s WHERE affected = B'1'),
				(SELECT COUNT(*) FROM %[2]s),
				(SELECT COALESCE(MAX(height), 0) FROM %[2]s)`, t, b),
	}, nil
}
