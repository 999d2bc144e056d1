package voxel

import "fmt"

// Palette maps compact local indices to global block ids. Sections with few
// distinct block types ship a palette so packed entries need fewer bits. An
// empty palette means no indirection: packed entries are global ids
// directly. A palette is fixed at section construction and never mutated.
type Palette []uint16

// Resolve returns the global id for a decoded local index. With an empty
// palette the index is the id. A non-empty palette with an out-of-range
// index means the block data is corrupt.
func (p Palette) Resolve(index uint32) (uint16, error) {
	if len(p) == 0 {
		return uint16(index), nil
	}
	if index >= uint32(len(p)) {
		return 0, fmt.Errorf("%w: index %d, palette size %d", ErrPaletteIndex, index, len(p))
	}
	return p[index], nil
}
