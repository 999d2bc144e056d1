package bits

import (
	"encoding/binary"
	"math/rand"
	"testing"
)

func TestSwapWords(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if err := SwapWords(buf); err != nil {
		t.Fatalf("SwapWords failed: %v", err)
	}
	got := binary.LittleEndian.Uint64(buf)
	if got != 0x0102030405060708 {
		t.Errorf("expected native word 0x0102030405060708, got 0x%016x", got)
	}
	// Raw byte order after the swap.
	want := []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("byte %d: expected 0x%02x, got 0x%02x", i, want[i], buf[i])
		}
	}
}

func TestSwapWordsIsInvolution(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	orig := append([]byte(nil), buf...)
	if err := SwapWords(buf); err != nil {
		t.Fatalf("SwapWords failed: %v", err)
	}
	if err := SwapWords(buf); err != nil {
		t.Fatalf("SwapWords failed: %v", err)
	}
	for i := range orig {
		if buf[i] != orig[i] {
			t.Fatalf("double swap changed byte %d: 0x%02x -> 0x%02x", i, orig[i], buf[i])
		}
	}
}

func TestSwapWordsRejectsUnaligned(t *testing.T) {
	if err := SwapWords(make([]byte, 7)); err != ErrWordAlign {
		t.Errorf("expected ErrWordAlign, got %v", err)
	}
}

func TestUnpackLSBFirst(t *testing.T) {
	// Width 4: byte 0xB5 = bits 10101101 (LSB first: 1,0,1,1,0,1,0,1)
	// holds values 0x5 then 0xB.
	got, err := Unpack([]byte{0xB5}, 4, 2)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if len(got) != 2 || got[0] != 0x5 || got[1] != 0xB {
		t.Errorf("expected [0x5 0xB], got %#v", got)
	}
}

func TestUnpackCrossesByteBoundary(t *testing.T) {
	// Width 5, values 19 (10011b) and 14 (01110b). Stream bits in scan
	// order: 1,1,0,0,1 then 0,1,1,1,0. Byte 0 takes the first eight
	// (bit0 first) = 0xD3, byte 1 takes the last two = 0x01.
	got, err := Unpack([]byte{0xD3, 0x01}, 5, 2)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if got[0] != 19 || got[1] != 14 {
		t.Errorf("expected [19 14], got %#v", got)
	}
}

func TestUnpackIgnoresPadding(t *testing.T) {
	// 8 bytes at width 5 hold floor(64/5) = 12 values; the last 4 bits
	// are padding.
	buf := make([]byte, 8)
	got, err := Unpack(buf, 5, 4096)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if len(got) != 12 {
		t.Errorf("expected 12 values from 64 bits at width 5, got %d", len(got))
	}
}

func TestUnpackRejectsWidth(t *testing.T) {
	for _, w := range []uint{0, 17, 64} {
		if _, err := Unpack(make([]byte, 8), w, 1); err != ErrWidth {
			t.Errorf("width %d: expected ErrWidth, got %v", w, err)
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	widths := []uint{4, 5, 6, 8, 9, 12, 16}
	for _, width := range widths {
		rng := rand.New(rand.NewSource(int64(width)))
		values := make([]uint32, 4096)
		for i := range values {
			values[i] = uint32(rng.Intn(1 << width))
		}

		packed, err := Pack(values, width)
		if err != nil {
			t.Fatalf("width %d: Pack failed: %v", width, err)
		}
		if len(packed)%8 != 0 {
			t.Fatalf("width %d: packed length %d not word-aligned", width, len(packed))
		}

		got, err := Unpack(packed, width, 4096)
		if err != nil {
			t.Fatalf("width %d: Unpack failed: %v", width, err)
		}
		if len(got) != 4096 {
			t.Fatalf("width %d: expected 4096 values, got %d", width, len(got))
		}
		for i := range values {
			if got[i] != values[i] {
				t.Fatalf("width %d: value %d: expected %d, got %d", width, i, values[i], got[i])
			}
		}
	}
}

func TestPackThenSwapMatchesWireRoundTrip(t *testing.T) {
	// Simulate the full wire path: pack natively, swap to big-endian wire
	// words, then normalize and unpack as a decoder would.
	values := []uint32{7, 0, 31, 16, 1, 2, 3, 4, 5, 6, 7, 8}
	packed, err := Pack(values, 5)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	if err := SwapWords(packed); err != nil { // native -> wire
		t.Fatalf("SwapWords failed: %v", err)
	}
	if err := SwapWords(packed); err != nil { // wire -> native
		t.Fatalf("SwapWords failed: %v", err)
	}
	got, err := Unpack(packed, 5, len(values))
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	for i := range values {
		if got[i] != values[i] {
			t.Fatalf("value %d: expected %d, got %d", i, values[i], got[i])
		}
	}
}
