package wire

import (
	"time"

	crerr "github.com/cockroachdb/errors"
)

// NullTimestamp is the on-wire form of an absent time.
const NullTimestamp uint64 = 0xFFFFFFFFFFFFFFFF

var ErrTimestamp = crerr.New("invalid packed timestamp")

// PackTime encodes t as year<<48 | month<<40 | day<<32 | hour<<24 | minute<<16 | second<<8.
// Sub-second precision is dropped.
func PackTime(t *time.Time) uint64 {
	if t == nil {
		return NullTimestamp
	}
	u := t.UTC()
	return uint64(u.Year())<<48 |
		uint64(u.Month())<<40 |
		uint64(u.Day())<<32 |
		uint64(u.Hour())<<24 |
		uint64(u.Minute())<<16 |
		uint64(u.Second())<<8
}

func UnpackTime(v uint64) (*time.Time, error) {
	if v == NullTimestamp {
		return nil, nil
	}

	year := int(v >> 48)
	month := int(v >> 40 & 0xFF)
	day := int(v >> 32 & 0xFF)
	hour := int(v >> 24 & 0xFF)
	minute := int(v >> 16 & 0xFF)
	second := int(v >> 8 & 0xFF)

	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || second > 59 {
		return nil, crerr.Wrapf(ErrTimestamp, "0x%016x", v)
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	if t.Day() != day {
		return nil, crerr.Wrapf(ErrTimestamp, "0x%016x: day out of range", v)
	}
	return &t, nil
}

// Truncate drops what PackTime cannot carry, so in-memory values match a round trip.
func Truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
