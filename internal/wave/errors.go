package wave

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks grid parameters that prevent generation from starting.
	ErrConfig = errors.New("invalid grid configuration")
	// ErrTileCount is returned when the registry holds fewer than 1 or more
	// than 128 tile types.
	ErrTileCount = fmt.Errorf("%w: tile type count must be in [1, 128]", ErrConfig)
	// ErrContradiction marks a cell whose wave has no possibilities left.
	ErrContradiction = errors.New("contradiction")
	// ErrOutOfBounds is returned for positions outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
)

// ContradictionError reports the cell that ran out of possibilities.
type ContradictionError struct {
	At Point
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("contradiction at (%d,%d): no tile type fits", e.At.X, e.At.Y)
}

// Unwrap lets errors.Is match ErrContradiction.
func (e *ContradictionError) Unwrap() error { return ErrContradiction }
