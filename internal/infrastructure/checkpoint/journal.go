// Package checkpoint persists which restore lines were already applied, so an interrupted
// restore can be rerun against the same dump without replaying it.
package checkpoint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/L3Technosmith/pkmnFoundations/internal/usecase"
)

const linePrefix = "line/"

// Journal is a pebble-backed usecase.RestoreJournal. Marks are written without fsync
// and flushed on Close.
type Journal struct {
	db *pebble.DB
}

var _ usecase.RestoreJournal = (*Journal)(nil)

func Open(dir string) (*Journal, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("%w: checkpoint dir is required", usecase.ErrInvalidInput)
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", dir, err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Applied(source string, line int) (bool, error) {
	_, closer, err := j.db.Get(lineKey(source, line))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read checkpoint %s:%d: %w", source, line, err)
	}
	if err := closer.Close(); err != nil {
		return false, err
	}
	return true, nil
}

func (j *Journal) Mark(source string, line int) error {
	if err := j.db.Set(lineKey(source, line), nil, pebble.NoSync); err != nil {
		return fmt.Errorf("write checkpoint %s:%d: %w", source, line, err)
	}
	return nil
}

// Reset forgets every line recorded for source.
func (j *Journal) Reset(source string) error {
	start, end := sourceBounds(source)
	if err := j.db.DeleteRange(start, end, pebble.Sync); err != nil {
		return fmt.Errorf("reset checkpoint %s: %w", source, err)
	}
	return nil
}

func (j *Journal) Close() error {
	flushErr := j.db.Flush()
	return errors.Join(flushErr, j.db.Close())
}

// Keys are line/<source>\x00<line as big-endian uint64>, so one source occupies
// the range [line/<source>\x00, line/<source>\x01).
func lineKey(source string, line int) []byte {
	key := make([]byte, 0, len(linePrefix)+len(source)+9)
	key = append(key, linePrefix...)
	key = append(key, source...)
	key = append(key, 0x00)
	return binary.BigEndian.AppendUint64(key, uint64(line))
}

func sourceBounds(source string) ([]byte, []byte) {
	start := append([]byte(linePrefix+source), 0x00)
	end := append([]byte(linePrefix+source), 0x01)
	return start, end
}
