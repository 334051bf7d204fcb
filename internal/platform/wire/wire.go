// Package wire holds the fixed-layout primitives shared by the record codecs.
// Every multi-byte integer on the wire is little endian.
package wire

import (
	"encoding/binary"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrLength marks any blob or sub-field whose size differs from its layout.
	ErrLength = crerr.New("wire length mismatch")
	// ErrRange marks a value that does not fit the width of its wire field.
	ErrRange = crerr.New("wire value out of range")
)

func LengthError(field string, want, got int) error {
	return crerr.Wrapf(ErrLength, "%s: want %d bytes, got %d", field, want, got)
}

func RangeError(field string, value uint64, limit uint64) error {
	return crerr.Wrapf(ErrRange, "%s: %d exceeds %d", field, value, limit)
}

// Writer fills a fixed-size buffer at explicit offsets. The first failure sticks.
type Writer struct {
	buf []byte
	err error
}

func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

func (w *Writer) PutU8(off int, v uint8) {
	w.buf[off] = v
}

func (w *Writer) PutU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[off:], v)
}

func (w *Writer) PutU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[off:], v)
}

func (w *Writer) PutI32(off int, v int32) {
	binary.LittleEndian.PutUint32(w.buf[off:], uint32(v))
}

func (w *Writer) PutU64(off int, v uint64) {
	binary.LittleEndian.PutUint64(w.buf[off:], v)
}

// PutBytes copies b at off after checking it is exactly size bytes long.
func (w *Writer) PutBytes(field string, off int, b []byte, size int) {
	if w.err != nil {
		return
	}
	if len(b) != size {
		w.err = LengthError(field, size, len(b))
		return
	}
	copy(w.buf[off:off+size], b)
}

// Fail records err unless an earlier failure is already pending.
func (w *Writer) Fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

// Reader reads a blob that has already passed its length check.
type Reader struct {
	buf []byte
}

func NewReader(field string, b []byte, size int) (Reader, error) {
	if len(b) != size {
		return Reader{}, LengthError(field, size, len(b))
	}
	return Reader{buf: b}, nil
}

func (r Reader) U8(off int) uint8 {
	return r.buf[off]
}

func (r Reader) U16(off int) uint16 {
	return binary.LittleEndian.Uint16(r.buf[off:])
}

func (r Reader) U32(off int) uint32 {
	return binary.LittleEndian.Uint32(r.buf[off:])
}

func (r Reader) I32(off int) int32 {
	return int32(binary.LittleEndian.Uint32(r.buf[off:]))
}

func (r Reader) U64(off int) uint64 {
	return binary.LittleEndian.Uint64(r.buf[off:])
}

// Bytes returns a copy, never a view into the source blob.
func (r Reader) Bytes(off, n int) []byte {
	out := make([]byte, n)
	copy(out, r.buf[off:off+n])
	return out
}

// Clone returns a copy of b; nil stays nil.
func Clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
