package voxel

import (
	"fmt"
	"sync"
)

// ColumnPos keys a column in the world grid.
type ColumnPos struct {
	X, Z int
}

// World is the registry of loaded columns and the owner of the background
// decode workers. Sections are ingested pending via Put and decoded off the
// caller's goroutine; lookups that arrive first block on the section's
// decode gate.
type World struct {
	mu      sync.RWMutex
	columns map[ColumnPos]*Column
	closed  bool

	queue chan *Section
	wg    sync.WaitGroup
}

// NewWorld creates a world with the given number of decode workers
// (minimum one).
func NewWorld(workers int) *World {
	if workers < 1 {
		workers = 1
	}
	w := &World{
		columns: make(map[ColumnPos]*Column, 64),
		queue:   make(chan *Section, 64),
	}
	w.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer w.wg.Done()
			for s := range w.queue {
				// The outcome is recorded on the section; lookups
				// surface it per-section.
				s.Decode()
			}
		}()
	}
	return w
}

// Close stops the decode workers after draining queued sections. Put must
// not be called concurrently with Close; sections put after Close are
// decoded synchronously.
func (w *World) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.queue)
	w.wg.Wait()
}

// Put stores a pending section in its column, creating the column on first
// use, and schedules its decode. A section it replaces is failed with
// ErrDiscarded.
func (w *World) Put(s *Section) error {
	pos := s.Position()
	c := w.getOrCreateColumn(ColumnPos{X: pos.X, Z: pos.Z})
	if _, err := c.Put(s); err != nil {
		return err
	}

	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()
	if closed {
		s.Decode()
		return nil
	}
	w.queue <- s
	return nil
}

// Column returns the loaded column at a grid coordinate, or nil.
func (w *World) Column(x, z int) *Column {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.columns[ColumnPos{X: x, Z: z}]
}

// Block returns the voxel at world block coordinates (y in [0,256)). It
// routes to the owning column and may block on a section's decode gate.
func (w *World) Block(x, y, z int) (Voxel, error) {
	cx, lx := divMod16(x)
	cz, lz := divMod16(z)
	c := w.Column(cx, cz)
	if c == nil {
		return Voxel{}, fmt.Errorf("%w: no column at (%d,%d)", ErrOutOfBounds, cx, cz)
	}
	return c.Block(lx, y, lz)
}

// getOrCreateColumn looks the column up under the read lock and inserts
// under the write lock, re-checking for a racing insert.
func (w *World) getOrCreateColumn(pos ColumnPos) *Column {
	w.mu.RLock()
	c := w.columns[pos]
	w.mu.RUnlock()
	if c != nil {
		return c
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if c = w.columns[pos]; c == nil {
		c = NewColumn(pos.X, pos.Z)
		w.columns[pos] = c
	}
	return c
}

// divMod16 floor-divides a world coordinate into a grid coordinate and a
// local offset in [0,16). Plain / and % round toward zero and would map
// negative coordinates to the wrong column.
func divMod16(v int) (int, int) {
	d := v >> 4
	return d, v - d*16
}
