package terminal

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	crerr "github.com/cockroachdb/errors"
)

// SerialCodec maps row keys to the serial numbers players see and back.
// Implementations are bijective over their key range, never map a valid key to 0,
// and give the same answer across restarts.
type SerialCodec interface {
	KeyToSerial(key uint64) (uint64, error)
	SerialToKey(serial uint64) (uint64, error)
}

var ErrSerialRange = crerr.New("serial or key outside the codec range")

// IdentitySerial exposes the row key as the serial.
type IdentitySerial struct{}

func (IdentitySerial) KeyToSerial(key uint64) (uint64, error) {
	if key == 0 {
		return 0, crerr.Wrap(ErrSerialRange, "key 0")
	}
	return key, nil
}

func (IdentitySerial) SerialToKey(serial uint64) (uint64, error) {
	if serial == 0 {
		return 0, crerr.Wrap(ErrSerialRange, "serial 0")
	}
	return serial, nil
}

const (
	feistelBits   = 40
	feistelHalf   = feistelBits / 2
	feistelMask   = uint64(1)<<feistelHalf - 1
	feistelRounds = 4

	// MaxFeistelKey is the largest key FeistelSerial accepts.
	MaxFeistelKey = uint64(1)<<feistelBits - 1
)

// FeistelSerial is a keyed permutation of [1, 2^40). Sequential keys come out scattered,
// so serials do not reveal upload volume. 0 stays reserved by cycle walking.
type FeistelSerial struct {
	key uint64
}

func NewFeistelSerial(key uint64) FeistelSerial {
	return FeistelSerial{key: key}
}

func (f FeistelSerial) KeyToSerial(key uint64) (uint64, error) {
	if key == 0 || key > MaxFeistelKey {
		return 0, crerr.Wrapf(ErrSerialRange, "key %d", key)
	}
	out := f.permute(key)
	for out == 0 {
		out = f.permute(out)
	}
	return out, nil
}

func (f FeistelSerial) SerialToKey(serial uint64) (uint64, error) {
	if serial == 0 || serial > MaxFeistelKey {
		return 0, crerr.Wrapf(ErrSerialRange, "serial %d", serial)
	}
	out := f.invert(serial)
	for out == 0 {
		out = f.invert(out)
	}
	return out, nil
}

func (f FeistelSerial) permute(v uint64) uint64 {
	l, r := v>>feistelHalf, v&feistelMask
	for i := 0; i < feistelRounds; i++ {
		l, r = r, l^f.round(i, r)
	}
	return l<<feistelHalf | r
}

func (f FeistelSerial) invert(v uint64) uint64 {
	l, r := v>>feistelHalf, v&feistelMask
	for i := feistelRounds - 1; i >= 0; i-- {
		l, r = r^f.round(i, l), l
	}
	return l<<feistelHalf | r
}

func (f FeistelSerial) round(i int, half uint64) uint64 {
	var b [17]byte
	binary.LittleEndian.PutUint64(b[0:], f.key)
	b[8] = byte(i)
	binary.LittleEndian.PutUint64(b[9:], half)
	return xxhash.Sum64(b[:]) & feistelMask
}
