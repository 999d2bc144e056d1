package wire

import (
	"bytes"
	"testing"
)

func TestReadInt32BigEndian(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0xFF, 0xFF, 0xFF, 0xFF})

	v, err := r.ReadInt32()
	if err != nil {
		t.Fatalf("ReadInt32 failed: %v", err)
	}
	if v != 0x01020304 {
		t.Errorf("expected 0x01020304, got 0x%08x", v)
	}

	v, err = r.ReadInt32()
	if err != nil {
		t.Fatalf("ReadInt32 failed: %v", err)
	}
	if v != -1 {
		t.Errorf("expected -1, got %d", v)
	}
}

func TestReadBytesShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadBytes(4); err != ErrShortBuffer {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
	// Position must be unchanged after a failed read.
	b, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v", b)
	}
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0x80, 300, 0xFFFF, 1<<28 - 1, 1 << 28, 0xFFFFFFFF}

	w := NewWriter()
	for _, v := range values {
		w.WriteUvarint(v)
	}

	r := NewReader(w.Bytes())
	for _, want := range values {
		got, err := r.ReadUvarint()
		if err != nil {
			t.Fatalf("ReadUvarint failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
	if r.Len() != 0 {
		t.Errorf("expected all bytes consumed, %d left", r.Len())
	}
}

func TestUvarintKnownEncoding(t *testing.T) {
	w := NewWriter()
	w.WriteUvarint(300)
	if !bytes.Equal(w.Bytes(), []byte{0xAC, 0x02}) {
		t.Errorf("expected [0xAC 0x02], got %#v", w.Bytes())
	}
}

func TestUvarintTooLong(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	if _, err := r.ReadUvarint(); err != ErrBadVarint {
		t.Errorf("expected ErrBadVarint, got %v", err)
	}
}

func TestUvarintTruncated(t *testing.T) {
	r := NewReader([]byte{0x80})
	if _, err := r.ReadUvarint(); err != ErrShortBuffer {
		t.Errorf("expected ErrShortBuffer, got %v", err)
	}
}

func TestWriterMixedFields(t *testing.T) {
	w := NewWriter()
	w.WriteInt32(-2)
	w.WriteUint8(7)
	w.WriteBytes([]byte{9, 9})

	r := NewReader(w.Bytes())
	if v, _ := r.ReadInt32(); v != -2 {
		t.Errorf("expected -2, got %d", v)
	}
	if v, _ := r.ReadUint8(); v != 7 {
		t.Errorf("expected 7, got %d", v)
	}
	b, _ := r.ReadBytes(2)
	if !bytes.Equal(b, []byte{9, 9}) {
		t.Errorf("expected [9 9], got %v", b)
	}
}
