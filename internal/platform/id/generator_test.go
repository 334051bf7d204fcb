package id

import (
	"errors"
	"testing"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/require"
)

func TestKSUIDGenerator_IDsAreDistinctAndStamped(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	g := &KSUIDGenerator{clock: func() time.Time { return at }}

	a, err := g.NewID()
	require.NoError(t, err)
	b, err := g.NewID()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.Len(t, a, 27)

	parsed, err := ksuid.Parse(a)
	require.NoError(t, err)
	require.True(t, parsed.Time().Equal(at))
}

func TestKSUIDGenerator_ZeroValueUsesWallClock(t *testing.T) {
	var g KSUIDGenerator
	v, err := g.NewID()
	require.NoError(t, err)

	parsed, err := ksuid.Parse(v)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), parsed.Time(), 5*time.Second)
}

type errGenerator struct{}

func (errGenerator) NewID() (string, error) { return "", errors.New("entropy exhausted") }

func TestMust_FallsBackToNil(t *testing.T) {
	require.Equal(t, ksuid.Nil.String(), Must(errGenerator{}))
	require.NotEqual(t, ksuid.Nil.String(), Must(NewKSUIDGenerator()))
}
