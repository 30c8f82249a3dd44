// Package compactvec provides a compact fixed-width integer vector.
//
// A CompactVector stores unsigned integers using exactly Width() bits each,
// packed into a bit-addressable store, instead of one machine word per
// element. It is a building block for succinct data structures such as
// rank/select dictionaries and inverted indexes.
//
// # Quick Start
//
//	cv, _ := compactvec.FromSlice([]uint64{5, 256, 0, 10})
//	cv.Width() // 9
//	v, _ := cv.Get(1) // 256
//
// # Checked and Unchecked Access
//
// Get, Set and Push report out-of-range positions (*ErrOutOfBounds) and
// values wider than the vector (*ErrValueOverflow) as errors. At,
// SetUnchecked and PushUnchecked are the hot path: they truncate wide
// values to their low Width() bits and panic on out-of-range positions.
//
// # Serialization
//
// WriteTo emits the bit store (word count, words, bit length), then the
// element count and the width, all as little-endian uint64 values. ReadFrom
// reverses it and, unless WithTrustedInput is given, verifies that the bit
// store holds exactly Len()*Width() bits.
//
// The persistence package wraps this format in a checksummed, optionally
// compressed container and stores it in files or blob stores.
package compactvec
