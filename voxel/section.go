package voxel

import (
	"fmt"
	"sync"

	"github.com/robert-malhotra/go-voxel/internal/bits"
	"github.com/robert-malhotra/go-voxel/internal/light"
)

// Section is one 16x16x16 region of the world. It is constructed pending,
// holding copies of the encoded buffers, and becomes decoded after a
// one-time Decode. Exactly one of {raw buffers, decoded arrays} is present
// at any time.
//
// Block lookups gate on decode completion: a lookup against a pending
// section blocks until Decode (or Fail) runs, then all waiters are released
// together. The gate is the done channel; the decoded arrays are written
// before it is closed and are immutable afterwards, so waiters read them
// without further locking.
type Section struct {
	pos          Pos
	bitsPerEntry uint8
	palette      Palette

	mu   sync.Mutex
	done chan struct{}

	// Pending state, nil once decoded.
	rawBlocks []byte
	rawLight  []byte
	rawSky    []byte

	// Decoded state, set exactly once before done is closed.
	voxels     []Voxel
	blockLight []byte
	skyLight   []byte
	err        error
}

// NewSection constructs a pending section from encoded input. blocks is the
// packed block data (length must be a multiple of 8: it is a sequence of
// big-endian 64-bit words), blockLight a 2048-byte nibble-packed buffer,
// skyLight either nil or another 2048-byte buffer. The buffers are copied;
// the caller may reuse its slices.
func NewSection(pos Pos, blocks, blockLight, skyLight []byte, bitsPerEntry uint8, palette Palette) (*Section, error) {
	if len(blocks)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlockDataAlign, len(blocks))
	}
	if bitsPerEntry < 1 || bitsPerEntry > bits.MaxWidth {
		return nil, fmt.Errorf("%w: got %d", ErrBitsPerEntry, bitsPerEntry)
	}
	if len(blockLight) != light.PackedLen {
		return nil, fmt.Errorf("%w: block light is %d bytes", ErrLightLength, len(blockLight))
	}
	if skyLight != nil && len(skyLight) != light.PackedLen {
		return nil, fmt.Errorf("%w: sky light is %d bytes", ErrLightLength, len(skyLight))
	}

	s := &Section{
		pos:          pos,
		bitsPerEntry: bitsPerEntry,
		palette:      append(Palette(nil), palette...),
		done:         make(chan struct{}),
		rawBlocks:    append([]byte(nil), blocks...),
		rawLight:     append([]byte(nil), blockLight...),
	}
	if skyLight != nil {
		s.rawSky = append([]byte(nil), skyLight...)
	}
	return s, nil
}

// Position returns the section's world coordinate. Available in any state.
func (s *Section) Position() Pos {
	return s.pos
}

// Decode transforms the raw buffers into the decoded arrays and releases
// every lookup waiting on the section. It runs the transformation at most
// once; calling it again returns the first outcome without further
// mutation. Decoding is all-or-nothing: on failure nothing is published,
// the section is marked failed, and waiters are released with the error.
func (s *Section) Decode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return s.err
	default:
	}

	if err := s.decode(); err != nil {
		s.err = &DecodeError{Pos: s.pos, Err: err}
	}
	s.releaseRaw()
	close(s.done)
	return s.err
}

// Fail marks a still-pending section as unusable and releases its waiters
// with the given reason. The owner calls this when a section will never be
// decoded (replaced or dropped before its decode ran). No-op once decoded
// or already failed.
func (s *Section) Fail(reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return
	default:
	}

	s.err = &DecodeError{Pos: s.pos, Err: reason}
	s.releaseRaw()
	close(s.done)
}

// Block returns the voxel at a local coordinate. If the section is still
// pending the call blocks until decoding completes; after a failed decode
// it returns the decode error immediately.
func (s *Section) Block(x, y, z int) (Voxel, error) {
	if !inSection(x, y, z) {
		return Voxel{}, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	<-s.done
	if s.err != nil {
		return Voxel{}, s.err
	}
	return s.voxels[blockIndex(x, y, z)], nil
}

// BlockLight returns the decoded block-light value at a local coordinate,
// gating on decode like Block.
func (s *Section) BlockLight(x, y, z int) (byte, error) {
	if !inSection(x, y, z) {
		return 0, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	<-s.done
	if s.err != nil {
		return 0, s.err
	}
	return s.blockLight[blockIndex(x, y, z)], nil
}

// SkyLight returns the decoded sky-light value at a local coordinate and
// whether the section carried sky light at all (dimensions without sky
// omit it). Gates on decode like Block.
func (s *Section) SkyLight(x, y, z int) (byte, bool, error) {
	if !inSection(x, y, z) {
		return 0, false, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	<-s.done
	if s.err != nil {
		return 0, false, s.err
	}
	if s.skyLight == nil {
		return 0, false, nil
	}
	return s.skyLight[blockIndex(x, y, z)], true, nil
}

// Decoded reports whether the section decoded successfully. It never
// blocks.
func (s *Section) Decoded() bool {
	select {
	case <-s.done:
		return s.err == nil
	default:
		return false
	}
}

// Err returns the decode failure, or nil if the section is pending or
// decoded cleanly. It never blocks.
func (s *Section) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// decode runs the full pipeline: word normalization, bit extraction,
// palette resolution, light expansion, count validation. It assigns the
// decoded arrays only after every step succeeded. Caller holds s.mu.
func (s *Section) decode() error {
	// The wire ships big-endian words; extraction scans native order.
	if err := bits.SwapWords(s.rawBlocks); err != nil {
		return err
	}

	indices, err := bits.Unpack(s.rawBlocks, uint(s.bitsPerEntry), SectionVolume)
	if err != nil {
		return err
	}
	if len(indices) != SectionVolume {
		return fmt.Errorf("%w: got %d of %d entries", ErrBlockCount, len(indices), SectionVolume)
	}

	voxels := make([]Voxel, 0, SectionVolume)
	for _, index := range indices {
		id, err := s.palette.Resolve(index)
		if err != nil {
			return err
		}
		voxels = append(voxels, VoxelFromID(id))
	}

	blockLight, err := light.Expand(s.rawLight)
	if err != nil {
		return err
	}
	if len(blockLight) != SectionVolume {
		return fmt.Errorf("%w: got %d block-light entries", ErrLightCount, len(blockLight))
	}

	var skyLight []byte
	if s.rawSky != nil {
		skyLight, err = light.Expand(s.rawSky)
		if err != nil {
			return err
		}
		if len(skyLight) != SectionVolume {
			return fmt.Errorf("%w: got %d sky-light entries", ErrLightCount, len(skyLight))
		}
	}

	s.voxels = voxels
	s.blockLight = blockLight
	s.skyLight = skyLight
	return nil
}

// releaseRaw drops the encoded buffers. Caller holds s.mu.
func (s *Section) releaseRaw() {
	s.rawBlocks = nil
	s.rawLight = nil
	s.rawSky = nil
}
