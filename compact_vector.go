package compactvec

import (
	"fmt"
	"iter"
	"math/bits"
	"strconv"
	"strings"

	"github.com/hupe1980/compactvec/internal/bitvec"
	"github.com/hupe1980/compactvec/internal/conv"
)

// MaxWidth is the widest per-element width a CompactVector supports.
const MaxWidth = bitvec.MaxWidth

// CompactVector is a random-access sequence of unsigned integers in which
// every element occupies exactly Width() bits.
//
// Element i occupies bits [i*Width(), (i+1)*Width()) of the backing bit
// store. The width is fixed at construction.
//
// Two operation sets are provided. Get, Set and Push validate positions and
// values and report violations as errors. At, SetUnchecked and
// PushUnchecked skip validation: values wider than Width() are truncated to
// their low Width() bits, and out-of-range positions panic (a zero-width
// vector has no bits to address, so it never panics).
//
// A CompactVector is not safe for concurrent use; callers sharing one
// across goroutines must synchronize access themselves.
type CompactVector struct {
	store *bitvec.BitVector
	len   int
	width int
}

// New creates an empty CompactVector whose elements are width bits wide.
func New(width int) (*CompactVector, error) {
	if _, err := sizeInBits(0, width); err != nil {
		return nil, err
	}
	return &CompactVector{store: bitvec.New(), width: width}, nil
}

// WithCapacity creates an empty CompactVector with storage reserved for
// capacity elements. The capacity is a hint only.
func WithCapacity(capacity, width int) (*CompactVector, error) {
	bitCap, err := sizeInBits(capacity, width)
	if err != nil {
		return nil, err
	}
	return &CompactVector{store: bitvec.WithCapacity(bitCap), width: width}, nil
}

// WithLen creates a CompactVector of n zero elements.
func WithLen(n, width int) (*CompactVector, error) {
	bitLen, err := sizeInBits(n, width)
	if err != nil {
		return nil, err
	}
	return &CompactVector{store: bitvec.WithLen(bitLen), len: n, width: width}, nil
}

// FromSlice builds a CompactVector holding values, using the smallest width
// that fits the largest value (see NeededBits).
//
// It returns ErrEmptyInput if values is empty.
func FromSlice(values []uint64) (*CompactVector, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}

	var maxValue uint64
	for _, v := range values {
		maxValue = max(maxValue, v)
	}

	cv, err := WithLen(len(values), NeededBits(maxValue))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		cv.SetUnchecked(i, v)
	}
	return cv, nil
}

// NeededBits returns the number of bits needed to represent x. Zero needs
// one bit so that it still round-trips through a vector built from it.
func NeededBits(x uint64) int {
	if x == 0 {
		return 1
	}
	return bits.Len64(x)
}

func sizeInBits(n, width int) (int, error) {
	if width < 0 || width > MaxWidth {
		return 0, &ErrInvalidWidth{Width: width}
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative size %d", ErrInvalidSize, n)
	}
	total, err := conv.MulInt(n, width)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	return total, nil
}

// Reserve makes room for at least additional more elements so that the
// next additional pushes do not reallocate. It is a hint: non-positive or
// overflowing requests are ignored.
func (cv *CompactVector) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	bitCount, err := conv.MulInt(additional, cv.width)
	if err != nil {
		return
	}
	cv.store.Reserve(bitCount)
}

// Get returns the element at pos.
func (cv *CompactVector) Get(pos int) (uint64, error) {
	if err := cv.checkPos(pos); err != nil {
		return 0, err
	}
	return cv.At(pos), nil
}

// Set overwrites the element at pos. The vector is left unchanged if pos is
// out of range or value needs more than Width() bits.
func (cv *CompactVector) Set(pos int, value uint64) error {
	if err := cv.checkPos(pos); err != nil {
		return err
	}
	if err := cv.checkValue(value); err != nil {
		return err
	}
	cv.SetUnchecked(pos, value)
	return nil
}

// Push appends value. The vector is left unchanged if value needs more than
// Width() bits.
func (cv *CompactVector) Push(value uint64) error {
	if err := cv.checkValue(value); err != nil {
		return err
	}
	cv.PushUnchecked(value)
	return nil
}

// At returns the element at pos without a bounds check of its own.
// The caller guarantees 0 <= pos < Len(); otherwise At panics for any
// non-zero width.
func (cv *CompactVector) At(pos int) uint64 {
	return cv.store.GetBits(pos*cv.width, cv.width)
}

// SetUnchecked overwrites the element at pos with the low Width() bits of
// value. The caller guarantees 0 <= pos < Len(); otherwise it panics.
func (cv *CompactVector) SetUnchecked(pos int, value uint64) {
	cv.store.SetBits(pos*cv.width, value, cv.width)
}

// PushUnchecked appends the low Width() bits of value.
func (cv *CompactVector) PushUnchecked(value uint64) {
	cv.store.PushBits(value, cv.width)
	cv.len++
}

func (cv *CompactVector) checkPos(pos int) error {
	if pos < 0 || pos >= cv.len {
		return &ErrOutOfBounds{Pos: pos, Len: cv.len}
	}
	return nil
}

func (cv *CompactVector) checkValue(value uint64) error {
	if value&^bitvec.Mask(cv.width) != 0 {
		return &ErrValueOverflow{Value: value, Width: cv.width}
	}
	return nil
}

// Len returns the number of elements.
func (cv *CompactVector) Len() int {
	return cv.len
}

// IsEmpty reports whether the vector has no elements.
func (cv *CompactVector) IsEmpty() bool {
	return cv.len == 0
}

// Width returns the number of bits per element.
func (cv *CompactVector) Width() int {
	return cv.width
}

// Values decodes all elements in order.
func (cv *CompactVector) Values() []uint64 {
	out := make([]uint64, cv.len)
	for i := range out {
		out[i] = cv.At(i)
	}
	return out
}

// All returns an iterator over positions and elements.
func (cv *CompactVector) All() iter.Seq2[int, uint64] {
	return func(yield func(int, uint64) bool) {
		for i := 0; i < cv.len; i++ {
			if !yield(i, cv.At(i)) {
				return
			}
		}
	}
}

// Equal reports whether both vectors have the same length, width and
// elements.
func (cv *CompactVector) Equal(other *CompactVector) bool {
	if cv == nil || other == nil {
		return cv == other
	}
	return cv.len == other.len && cv.width == other.width && cv.store.Equal(other.store)
}

// Clone returns a deep copy.
func (cv *CompactVector) Clone() *CompactVector {
	return &CompactVector{store: cv.store.Clone(), len: cv.len, width: cv.width}
}

// String renders the elements, length and width for debugging.
func (cv *CompactVector) String() string {
	var sb strings.Builder
	sb.WriteString("CompactVector{ints: [")
	for i := 0; i < cv.len; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(cv.At(i), 10))
	}
	sb.WriteString("], len: ")
	sb.WriteString(strconv.Itoa(cv.len))
	sb.WriteString(", width: ")
	sb.WriteString(strconv.Itoa(cv.width))
	sb.WriteByte('}')
	return sb.String()
}
