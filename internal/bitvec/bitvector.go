package bitvec

import (
	"fmt"
	"slices"
)

const (
	// WordBits is the number of bits per storage word.
	WordBits = 64

	// MaxWidth is the widest field GetBits/SetBits/PushBits accept.
	MaxWidth = WordBits
)

// BitVector is a growable sequence of bits.
type BitVector struct {
	words []uint64
	len   int
}

// New creates an empty BitVector.
func New() *BitVector {
	return &BitVector{}
}

// WithCapacity creates an empty BitVector with room for bits bits.
func WithCapacity(bits int) *BitVector {
	return &BitVector{words: make([]uint64, 0, wordsFor(bits))}
}

// WithLen creates a zero-filled BitVector of exactly bits bits.
func WithLen(bits int) *BitVector {
	return &BitVector{words: make([]uint64, wordsFor(bits)), len: bits}
}

func wordsFor(bits int) int {
	return (bits + WordBits - 1) / WordBits
}

// Mask returns a mask with the low width bits set.
func Mask(width int) uint64 {
	if width >= WordBits {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// Len returns the number of bits stored.
func (b *BitVector) Len() int {
	return b.len
}

// Words returns the backing words. The slice aliases internal storage.
func (b *BitVector) Words() []uint64 {
	return b.words
}

// Reserve ensures room for at least additional more bits without
// reallocating.
func (b *BitVector) Reserve(additional int) {
	need := wordsFor(b.len+additional) - len(b.words)
	if need > 0 {
		b.words = slices.Grow(b.words, need)
	}
}

func (b *BitVector) checkRange(offset, width int) {
	if width < 0 || width > MaxWidth {
		panic(fmt.Sprintf("bitvec: width %d out of range [0, %d]", width, MaxWidth))
	}
	if offset < 0 || offset+width > b.len {
		panic(fmt.Sprintf("bitvec: bit range [%d, %d) out of range with length %d", offset, offset+width, b.len))
	}
}

// GetBits reads width bits starting at offset. Bit 0 of the result is the
// bit at offset. It panics if the range exceeds Len().
func (b *BitVector) GetBits(offset, width int) uint64 {
	b.checkRange(offset, width)
	if width == 0 {
		return 0
	}

	block := offset / WordBits
	shift := uint(offset % WordBits)
	if shift+uint(width) <= WordBits {
		return (b.words[block] >> shift) & Mask(width)
	}
	return (b.words[block]>>shift | b.words[block+1]<<(WordBits-shift)) & Mask(width)
}

// SetBits overwrites width bits starting at offset with the low width bits
// of value. It panics if the range exceeds Len().
func (b *BitVector) SetBits(offset int, value uint64, width int) {
	b.checkRange(offset, width)
	if width == 0 {
		return
	}

	mask := Mask(width)
	value &= mask

	block := offset / WordBits
	shift := uint(offset % WordBits)
	b.words[block] = b.words[block]&^(mask<<shift) | value<<shift
	if shift+uint(width) > WordBits {
		spill := WordBits - shift
		b.words[block+1] = b.words[block+1]&^(mask>>spill) | value>>spill
	}
}

// PushBits appends the low width bits of value.
func (b *BitVector) PushBits(value uint64, width int) {
	if width < 0 || width > MaxWidth {
		panic(fmt.Sprintf("bitvec: width %d out of range [0, %d]", width, MaxWidth))
	}
	if width == 0 {
		return
	}

	value &= Mask(width)
	shift := uint(b.len % WordBits)
	if shift == 0 {
		b.words = append(b.words, value)
	} else {
		last := len(b.words) - 1
		b.words[last] |= value << shift
		if shift+uint(width) > WordBits {
			b.words = append(b.words, value>>(WordBits-shift))
		}
	}
	b.len += width
}

// Clone returns a deep copy.
func (b *BitVector) Clone() *BitVector {
	return &BitVector{words: slices.Clone(b.words), len: b.len}
}

// Equal reports whether both vectors hold the same bits.
func (b *BitVector) Equal(other *BitVector) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.len == other.len && slices.Equal(b.words, other.words)
}
