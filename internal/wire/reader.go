// Package wire provides low-level binary I/O for the section frame format.
// Fixed-width integers are big-endian on the wire; counts and palette
// entries are unsigned varints.
package wire

import (
	"encoding/binary"
	"errors"
)

// Errors returned by the reader.
var (
	ErrShortBuffer = errors.New("unexpected end of frame")
	ErrBadVarint   = errors.New("malformed varint")
)

// MaxVarintLen is the longest accepted varint encoding. Frame values fit in
// 32 bits.
const MaxVarintLen = 5

// Reader decodes frame fields from a byte slice, tracking its position.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader over buf. The reader does not copy buf;
// returned byte slices alias it.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.pos
}

// ReadBytes reads exactly n bytes from the current position. The returned
// slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt32 reads a signed 32-bit big-endian integer.
func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadUvarint reads an unsigned varint: seven value bits per byte, low
// group first, high bit set on every byte but the last.
func (r *Reader) ReadUvarint() (uint32, error) {
	var v uint32
	var shift uint
	for i := 0; i < MaxVarintLen; i++ {
		b, err := r.ReadUint8()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
	return 0, ErrBadVarint
}
