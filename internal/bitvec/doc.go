// Package bitvec provides a growable bit sequence with arbitrary-width
// reads and writes at arbitrary bit offsets.
//
// Bits are packed little-endian into uint64 words: bit i lives in word i/64
// at position i%64. A field of width w starting at offset o may straddle two
// words. Bits beyond Len() in the last word are always zero.
//
// BitVector is not safe for concurrent mutation.
package bitvec
