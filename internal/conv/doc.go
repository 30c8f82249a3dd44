// Package conv provides checked integer conversions.
//
// Serialized vectors carry their lengths as fixed-width unsigned integers.
// These helpers validate such values before they are turned into Go ints
// used for slice sizes and bit offsets.
//
// For conversions that are provably safe by construction (loop indices,
// values already validated), use direct type casts instead.
package conv
