package wire

import "encoding/binary"

// Writer encodes frame fields into a growing byte buffer. It is the inverse
// of Reader and never fails; retrieve the result with Bytes.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded frame so far. The slice aliases the writer's
// buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteUint8 appends an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteInt32 appends a signed 32-bit big-endian integer.
func (w *Writer) WriteInt32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

// WriteUvarint appends an unsigned varint.
func (w *Writer) WriteUvarint(v uint32) {
	for v >= 0x80 {
		w.buf = append(w.buf, byte(v)|0x80)
		v >>= 7
	}
	w.buf = append(w.buf, byte(v))
}
