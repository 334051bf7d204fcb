package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPackTime_RoundTrip(t *testing.T) {
	t.Parallel()

	in := time.Date(2014, time.May, 20, 13, 45, 59, 0, time.UTC)
	packed := PackTime(&in)
	require.Equal(t, uint64(2014)<<48|uint64(5)<<40|uint64(20)<<32|uint64(13)<<24|uint64(45)<<16|uint64(59)<<8, packed)

	out, err := UnpackTime(packed)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.True(t, in.Equal(*out))
}

func TestPackTime_NullSentinel(t *testing.T) {
	t.Parallel()

	require.Equal(t, NullTimestamp, PackTime(nil))

	out, err := UnpackTime(NullTimestamp)
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestUnpackTime_RejectsImpossibleDates(t *testing.T) {
	t.Parallel()

	cases := map[string]uint64{
		"zero":        0,
		"month 13":    uint64(2010)<<48 | uint64(13)<<40 | uint64(1)<<32,
		"february 30": uint64(2010)<<48 | uint64(2)<<40 | uint64(30)<<32,
		"hour 24":     uint64(2010)<<48 | uint64(1)<<40 | uint64(1)<<32 | uint64(24)<<24,
	}
	for name, v := range cases {
		_, err := UnpackTime(v)
		if !errors.Is(err, ErrTimestamp) {
			t.Fatalf("%s: expected ErrTimestamp, got %v", name, err)
		}
	}
}

func TestWriter_PutBytesLengthMismatch(t *testing.T) {
	t.Parallel()

	w := NewWriter(8)
	w.PutBytes("name", 0, []byte{1, 2, 3}, 4)
	w.PutU32(4, 7)

	_, err := w.Bytes()
	require.ErrorIs(t, err, ErrLength)
}

func TestReader_CopiesOut(t *testing.T) {
	t.Parallel()

	src := []byte{1, 2, 3, 4}
	r, err := NewReader("blob", src, 4)
	require.NoError(t, err)

	got := r.Bytes(0, 2)
	got[0] = 9
	require.Equal(t, byte(1), src[0])

	_, err = NewReader("blob", src, 5)
	require.ErrorIs(t, err, ErrLength)
}
