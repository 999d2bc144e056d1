package voxel

// Section geometry. A section is the 16x16x16 unit of chunk streaming; a
// column stacks SectionsPerColumn of them vertically.
const (
	SectionSize       = 16
	SectionVolume     = SectionSize * SectionSize * SectionSize // 4096
	SectionsPerColumn = 16
)

// Pos is an integer triple. For a section it is the world-grid coordinate;
// for block accessors it is a local coordinate with each axis in [0,16).
type Pos struct {
	X, Y, Z int
}

// Voxel is one world cell: a block type plus its auxiliary metadata state.
// Immutable once constructed.
type Voxel struct {
	Type uint16
	Meta uint8
}

// VoxelFromID splits a packed global block id into its type (upper bits)
// and metadata (low nibble).
func VoxelFromID(id uint16) Voxel {
	return Voxel{Type: id >> 4, Meta: uint8(id & 0xF)}
}

// blockIndex converts a local coordinate to the decoded array index.
func blockIndex(x, y, z int) int {
	return y*256 + z*16 + x
}

// inSection reports whether a local coordinate lies inside a section.
func inSection(x, y, z int) bool {
	return x >= 0 && x < SectionSize &&
		y >= 0 && y < SectionSize &&
		z >= 0 && z < SectionSize
}
