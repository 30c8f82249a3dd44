package compactvec

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by FromSlice when no values are given: a
	// width cannot be inferred from no data.
	ErrEmptyInput = errors.New("cannot build compact vector from empty input")

	// ErrInvalidSize is returned when a length or capacity is negative or
	// the resulting bit count does not fit in an int.
	ErrInvalidSize = errors.New("invalid size")

	// ErrOutOfRange matches every *ErrOutOfBounds via errors.Is.
	ErrOutOfRange = errors.New("position out of range")

	// ErrOverflow matches every *ErrValueOverflow via errors.Is.
	ErrOverflow = errors.New("value does not fit width")

	// ErrMalformedData is returned when serialized bytes are truncated or
	// internally inconsistent.
	ErrMalformedData = errors.New("malformed compact vector data")
)

// ErrOutOfBounds indicates a position outside [0, Len).
type ErrOutOfBounds struct {
	Pos int
	Len int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("position %d out of bounds for length %d", e.Pos, e.Len)
}

// Is reports whether target is ErrOutOfRange.
func (e *ErrOutOfBounds) Is(target error) bool { return target == ErrOutOfRange }

// ErrValueOverflow indicates a value that needs more than Width bits.
type ErrValueOverflow struct {
	Value uint64
	Width int
}

func (e *ErrValueOverflow) Error() string {
	return fmt.Sprintf("value %d does not fit in %d bits", e.Value, e.Width)
}

// Is reports whether target is ErrOverflow.
func (e *ErrValueOverflow) Is(target error) bool { return target == ErrOverflow }

// ErrInvalidWidth indicates a width outside [0, 64].
type ErrInvalidWidth struct {
	Width int
}

func (e *ErrInvalidWidth) Error() string {
	return fmt.Sprintf("invalid width: %d (must be in [0, %d])", e.Width, MaxWidth)
}

// malformed wraps a decoding failure so that it matches ErrMalformedData
// while keeping the underlying cause reachable.
func malformed(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrMalformedData, what, err)
}
