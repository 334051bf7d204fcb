package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/storage"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateAdminShutdown        = "57P01"
	sqlClassConnectionException  = "08"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsSerializationFailure reports whether err is postgres refusing to serialize a transaction.
// Callers surface it as a conflict; repositories never retry.
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == sqlStateSerializationFailure || pqErr.Code == sqlStateDeadlockDetected
}

// IsConnectionFailure reports whether err means the database could not be reached or dropped the session.
func IsConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code.Class() == sqlClassConnectionException || pqErr.Code == sqlStateAdminShutdown
}

// ParseIsolation maps the DB_TX_ISOLATION setting to a transaction isolation level.
func ParseIsolation(raw string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "serializable":
		return sql.LevelSerializable, nil
	case "repeatable_read", "repeatable-read", "snapshot":
		return sql.LevelRepeatableRead, nil
	default:
		return 0, fmt.Errorf("unsupported transaction isolation %q", raw)
	}
}

// txRunner opens the write transactions of a repository at a fixed isolation level,
// and the read-only snapshots its multi-statement reads run in.
type txRunner struct {
	db        *sqlx.DB
	isolation sql.IsolationLevel
}

// snapshotTx is one consistent view for reads. Repeatable read never aborts a read-only transaction.
var snapshotTx = sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

func (r txRunner) read(ctx context.Context, op string) (*sqlx.Tx, error) {
	opts := snapshotTx
	tx, err := r.db.BeginTxx(ctx, &opts)
	if err != nil {
		return nil, fmt.Errorf("begin read tx for %s: %w", op, markStorageErr(err))
	}
	return tx, nil
}

func (r txRunner) begin(ctx context.Context, op string) (*sqlx.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: r.isolation})
	if err != nil {
		return nil, fmt.Errorf("begin tx for %s: %w", op, markStorageErr(err))
	}
	return tx, nil
}

func commit(tx *sqlx.Tx, op string) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s tx: %w", op, err)
	}
	return nil
}

// wrapWrite annotates a failed write and marks it with the storage failure class it belongs to.
func wrapWrite(op string, err error) error {
	return fmt.Errorf("%s: %w", op, markStorageErr(err))
}

func markStorageErr(err error) error {
	switch {
	case IsSerializationFailure(err):
		return crerr.Mark(err, storage.ErrConflict)
	case IsConnectionFailure(err):
		return crerr.Mark(err, storage.ErrUnavailable)
	default:
		return err
	}
}
