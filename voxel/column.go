package voxel

import (
	"fmt"
	"sync"
)

// Column is the vertical stack of sections at one (x,z) grid coordinate.
// It owns its sections: replacing one fails the old section so that any
// waiter blocked on it is released instead of waiting forever.
type Column struct {
	x, z int

	mu       sync.RWMutex
	sections [SectionsPerColumn]*Section
}

// NewColumn creates an empty column at grid coordinate (x, z).
func NewColumn(x, z int) *Column {
	return &Column{x: x, z: z}
}

// X returns the column's grid x coordinate.
func (c *Column) X() int { return c.x }

// Z returns the column's grid z coordinate.
func (c *Column) Z() int { return c.z }

// Section returns the section at vertical index y in [0,16), or nil if the
// column has no section there.
func (c *Column) Section(y int) *Section {
	if y < 0 || y >= SectionsPerColumn {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sections[y]
}

// Put stores a section at its position's vertical index and returns the
// section it replaced, if any. The replaced section is failed with
// ErrDiscarded so its waiters do not block forever.
func (c *Column) Put(s *Section) (*Section, error) {
	y := s.Position().Y
	if y < 0 || y >= SectionsPerColumn {
		return nil, fmt.Errorf("%w: section y index %d", ErrOutOfBounds, y)
	}
	c.mu.Lock()
	old := c.sections[y]
	c.sections[y] = s
	c.mu.Unlock()

	if old != nil {
		old.Fail(ErrDiscarded)
	}
	return old, nil
}

// Block returns the voxel at column-local coordinates: x and z in [0,16),
// y in [0,256). It routes to the owning section and may block on that
// section's decode gate.
func (c *Column) Block(x, y, z int) (Voxel, error) {
	if x < 0 || x >= SectionSize || z < 0 || z >= SectionSize ||
		y < 0 || y >= SectionSize*SectionsPerColumn {
		return Voxel{}, fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	s := c.Section(y >> 4)
	if s == nil {
		return Voxel{}, fmt.Errorf("%w: no section at y index %d", ErrOutOfBounds, y>>4)
	}
	return s.Block(x, y&0xF, z)
}
