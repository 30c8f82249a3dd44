// Package testutil provides testing utilities for compactvec.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG and generators for integer
// sequences with uniform, fixed-width and skewed distributions.
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.Ints(10000, 10000)   // uniform [0, 10000)
//	wide := rng.WidthInts(100, 37)   // uniform over 37-bit values
//	skew := rng.ZipfInts(1000, 16, 1.5)
package testutil
