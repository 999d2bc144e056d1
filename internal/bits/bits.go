// Package bits implements the packed-index codec used by chunk section
// block data: 64-bit word endianness normalization and LSB-first extraction
// of fixed-width unsigned values.
package bits

import (
	"encoding/binary"
	"errors"
)

// MaxWidth is the widest supported entry. Global block ids are 16 bits, so
// no section ever packs wider entries than this.
const MaxWidth = 16

// Errors returned by the codec.
var (
	ErrWordAlign = errors.New("buffer length is not a multiple of 8")
	ErrWidth     = errors.New("entry width must be in [1, 16]")
)

// SwapWords reinterprets buf as a sequence of 64-bit words and byte-swaps
// each word in place. The wire carries packed words big-endian; extraction
// scans bytes in native little-endian word order, so every word must be
// normalized first.
func SwapWords(buf []byte) error {
	if len(buf)%8 != 0 {
		return ErrWordAlign
	}
	for i := 0; i < len(buf); i += 8 {
		w := binary.BigEndian.Uint64(buf[i:])
		binary.LittleEndian.PutUint64(buf[i:], w)
	}
	return nil
}

// Unpack extracts up to n values of the given bit width from buf, scanning
// each byte from its least-significant bit and accumulating scanned bits
// into the output value low-to-high. The first scanned bit becomes the
// lowest bit of the first value.
//
// This LSB-first order is the section wire contract; MSB-first extraction
// produces plausible-looking but wrong indices.
//
// At most floor(len(buf)*8 / width) values exist in buf; fewer than n is
// not an error, the caller checks the count. Trailing bits that cannot
// fill a whole value are padding.
func Unpack(buf []byte, width uint, n int) ([]uint32, error) {
	if width < 1 || width > MaxWidth {
		return nil, ErrWidth
	}
	avail := len(buf) * 8 / int(width)
	if n > avail {
		n = avail
	}
	out := make([]uint32, 0, n)
	var acc uint32
	var got uint
	for _, b := range buf {
		for j := 0; j < 8; j++ {
			acc |= uint32(b&1) << got
			b >>= 1
			got++
			if got == width {
				out = append(out, acc)
				if len(out) == n {
					return out, nil
				}
				acc, got = 0, 0
			}
		}
	}
	return out, nil
}

// Pack is the exact inverse of Unpack: each value contributes its low
// `width` bits to the stream, lowest bit first, bytes filled from their
// least-significant bit. The output is padded with zero bits to a whole
// number of 64-bit words, matching the section wire layout.
func Pack(values []uint32, width uint) ([]byte, error) {
	if width < 1 || width > MaxWidth {
		return nil, ErrWidth
	}
	nbits := len(values) * int(width)
	nbytes := (nbits + 7) / 8
	if rem := nbytes % 8; rem != 0 {
		nbytes += 8 - rem
	}
	out := make([]byte, nbytes)
	pos := 0
	for _, v := range values {
		for j := uint(0); j < width; j++ {
			if v>>j&1 == 1 {
				out[pos/8] |= 1 << (pos % 8)
			}
			pos++
		}
	}
	return out, nil
}
