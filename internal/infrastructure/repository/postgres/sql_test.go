package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/storage"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestIsSerializationFailure(t *testing.T) {
	t.Run("matches serialization failure", func(t *testing.T) {
		err := fmt.Errorf("exchange: %w", &pq.Error{Code: "40001"})
		require.True(t, IsSerializationFailure(err))
	})

	t.Run("matches deadlock", func(t *testing.T) {
		require.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	})

	t.Run("ignores other errors", func(t *testing.T) {
		require.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
		require.False(t, IsSerializationFailure(sql.ErrNoRows))
		require.False(t, IsSerializationFailure(nil))
	})
}

func TestParseIsolation(t *testing.T) {
	level, err := ParseIsolation("")
	require.NoError(t, err)
	require.Equal(t, sql.LevelSerializable, level)

	level, err = ParseIsolation(" Repeatable_Read ")
	require.NoError(t, err)
	require.Equal(t, sql.LevelRepeatableRead, level)

	_, err = ParseIsolation("read_committed")
	require.Error(t, err)
}

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)))
	require.False(t, isNotFound(fmt.Errorf("boom")))
}

func TestWrapWriteMarksConflicts(t *testing.T) {
	err := wrapWrite("exchange gts listing", &pq.Error{Code: "40001"})
	require.True(t, storage.IsConflict(err))
	require.True(t, IsSerializationFailure(err))
	require.Contains(t, err.Error(), "exchange gts listing")

	err = wrapWrite("deposit gts listing", fmt.Errorf("connection reset"))
	require.False(t, storage.IsConflict(err))
	require.False(t, storage.IsUnavailable(err))
}

func TestWrapWriteMarksUnavailable(t *testing.T) {
	for _, cause := range []error{
		driver.ErrBadConn,
		sql.ErrConnDone,
		&pq.Error{Code: "08006"},
		&pq.Error{Code: "57P01"},
	} {
		err := wrapWrite("upload terminal content", cause)
		require.True(t, storage.IsUnavailable(err), cause)
		require.False(t, storage.IsConflict(err))
	}

	require.False(t, IsConnectionFailure(&pq.Error{Code: "23505"}))
}

var errBeginRefused = errors.New("begin refused")

// beginRecorder is a database/sql connector that records the options of every transaction
// it is asked to open and refuses them, so a repository call stops right after BeginTx.
type beginRecorder struct {
	mu    sync.Mutex
	begun []driver.TxOptions
}

func (b *beginRecorder) Connect(context.Context) (driver.Conn, error) { return recorderConn{b}, nil }
func (b *beginRecorder) Driver() driver.Driver                        { return recorderDriver{b} }

func (b *beginRecorder) options() []driver.TxOptions {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]driver.TxOptions(nil), b.begun...)
}

type recorderDriver struct{ b *beginRecorder }

func (d recorderDriver) Open(string) (driver.Conn, error) { return recorderConn{d.b}, nil }

type recorderConn struct{ b *beginRecorder }

func (c recorderConn) Prepare(string) (driver.Stmt, error) { return nil, errBeginRefused }
func (c recorderConn) Close() error                        { return nil }
func (c recorderConn) Begin() (driver.Tx, error)           { return nil, errBeginRefused }

func (c recorderConn) BeginTx(_ context.Context, opts driver.TxOptions) (driver.Tx, error) {
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	c.b.begun = append(c.b.begun, opts)
	return nil, errBeginRefused
}

func TestMultiStatementReadsUseOneSnapshot(t *testing.T) {
	snapshot := driver.TxOptions{Isolation: driver.IsolationLevel(sql.LevelRepeatableRead), ReadOnly: true}

	t.Run("facility competitors", func(t *testing.T) {
		rec := &beginRecorder{}
		db := sqlx.NewDb(sql.OpenDB(rec), "postgres")
		t.Cleanup(func() { _ = db.Close() })

		_, err := NewFacilityRepository(db, sql.LevelSerializable).
			ListCompetitors(context.Background(), generation.Gen4, 1, 0, 0, 7)
		require.ErrorIs(t, err, errBeginRefused)
		require.Equal(t, []driver.TxOptions{snapshot}, rec.options())
	})

	t.Run("terminal search", func(t *testing.T) {
		rec := &beginRecorder{}
		db := sqlx.NewDb(sql.OpenDB(rec), "postgres")
		t.Cleanup(func() { _ = db.Close() })

		_, err := NewTerminalRepository(db, sql.LevelSerializable).
			Search(context.Background(), terminal.Box4, terminal.BoxQuery(-1, 20))
		require.ErrorIs(t, err, errBeginRefused)
		require.Equal(t, []driver.TxOptions{snapshot}, rec.options())
	})
}
