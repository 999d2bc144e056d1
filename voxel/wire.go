package voxel

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/robert-malhotra/go-voxel/internal/bits"
	"github.com/robert-malhotra/go-voxel/internal/light"
	"github.com/robert-malhotra/go-voxel/internal/wire"
)

// Section frame layout, zlib-compressed as a whole:
//
//	int32 x, int32 y, int32 z      section grid position (big-endian)
//	uint8 bitsPerEntry
//	uint8 flags                    bit 0: sky light present
//	uvarint paletteLen             then paletteLen uvarint global ids
//	uvarint blockLen               then blockLen bytes of packed words
//	2048 bytes block light
//	2048 bytes sky light           only when flagged
const flagSkyLight = 0x01

// ReadSection reads one compressed section frame and constructs a pending
// section from it. Construction preconditions (word alignment, bit width,
// light lengths) are validated here, at the boundary.
func ReadSection(r io.Reader) (*Section, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}

	fr := wire.NewReader(payload)
	var pos Pos
	for _, p := range []*int{&pos.X, &pos.Y, &pos.Z} {
		v, err := fr.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("%w: position: %v", ErrBadFrame, err)
		}
		*p = int(v)
	}

	bitsPerEntry, err := fr.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: bits per entry: %v", ErrBadFrame, err)
	}
	flags, err := fr.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: flags: %v", ErrBadFrame, err)
	}

	paletteLen, err := fr.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("%w: palette length: %v", ErrBadFrame, err)
	}
	if paletteLen > 1<<bits.MaxWidth {
		return nil, fmt.Errorf("%w: palette of %d entries", ErrBadFrame, paletteLen)
	}
	palette := make(Palette, 0, paletteLen)
	for i := uint32(0); i < paletteLen; i++ {
		id, err := fr.ReadUvarint()
		if err != nil {
			return nil, fmt.Errorf("%w: palette entry %d: %v", ErrBadFrame, i, err)
		}
		if id > 0xFFFF {
			return nil, fmt.Errorf("%w: palette entry %d is %d", ErrBadFrame, i, id)
		}
		palette = append(palette, uint16(id))
	}

	blockLen, err := fr.ReadUvarint()
	if err != nil {
		return nil, fmt.Errorf("%w: block data length: %v", ErrBadFrame, err)
	}
	blocks, err := fr.ReadBytes(int(blockLen))
	if err != nil {
		return nil, fmt.Errorf("%w: block data: %v", ErrBadFrame, err)
	}

	blockLight, err := fr.ReadBytes(light.PackedLen)
	if err != nil {
		return nil, fmt.Errorf("%w: block light: %v", ErrBadFrame, err)
	}
	var skyLight []byte
	if flags&flagSkyLight != 0 {
		skyLight, err = fr.ReadBytes(light.PackedLen)
		if err != nil {
			return nil, fmt.Errorf("%w: sky light: %v", ErrBadFrame, err)
		}
	}
	if fr.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrBadFrame, fr.Len())
	}

	return NewSection(pos, blocks, blockLight, skyLight, bitsPerEntry, palette)
}

// WriteSection emits one compressed section frame from encoded components,
// applying the same preconditions as NewSection.
func WriteSection(w io.Writer, pos Pos, blocks, blockLight, skyLight []byte, bitsPerEntry uint8, palette Palette) error {
	if len(blocks)%8 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrBlockDataAlign, len(blocks))
	}
	if bitsPerEntry < 1 || bitsPerEntry > bits.MaxWidth {
		return fmt.Errorf("%w: got %d", ErrBitsPerEntry, bitsPerEntry)
	}
	if len(blockLight) != light.PackedLen {
		return fmt.Errorf("%w: block light is %d bytes", ErrLightLength, len(blockLight))
	}
	if skyLight != nil && len(skyLight) != light.PackedLen {
		return fmt.Errorf("%w: sky light is %d bytes", ErrLightLength, len(skyLight))
	}

	fw := wire.NewWriter()
	fw.WriteInt32(int32(pos.X))
	fw.WriteInt32(int32(pos.Y))
	fw.WriteInt32(int32(pos.Z))
	fw.WriteUint8(bitsPerEntry)
	var flags uint8
	if skyLight != nil {
		flags |= flagSkyLight
	}
	fw.WriteUint8(flags)
	fw.WriteUvarint(uint32(len(palette)))
	for _, id := range palette {
		fw.WriteUvarint(uint32(id))
	}
	fw.WriteUvarint(uint32(len(blocks)))
	fw.WriteBytes(blocks)
	fw.WriteBytes(blockLight)
	if skyLight != nil {
		fw.WriteBytes(skyLight)
	}

	zw := zlib.NewWriter(w)
	if _, err := zw.Write(fw.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("compressing frame: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing frame: %w", err)
	}
	return nil
}
