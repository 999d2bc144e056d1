// Package voxel decodes server-sent chunk sections into queryable block
// arrays.
package voxel

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrBlockDataAlign = errors.New("block data length is not a multiple of 8")
	ErrBitsPerEntry   = errors.New("bits per entry must be in [1, 16]")
	ErrLightLength    = errors.New("light buffer must be 2048 bytes")
	ErrPaletteIndex   = errors.New("palette index out of range")
	ErrBlockCount     = errors.New("decoded block count mismatch")
	ErrLightCount     = errors.New("decoded light count mismatch")
	ErrOutOfBounds    = errors.New("local coordinate out of range")
	ErrDiscarded      = errors.New("section discarded before decode")
	ErrBadFrame       = errors.New("malformed section frame")
)

// DecodeError reports a failed section decode to the owning structure. The
// section that produced it is unusable; lookups against it return the same
// error instead of blocking.
type DecodeError struct {
	Pos Pos
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding section (%d,%d,%d): %v", e.Pos.X, e.Pos.Y, e.Pos.Z, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
