package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Ints returns n values uniformly drawn from [0, bound). It panics if
// bound is 0.
func (r *RNG) Ints(n int, bound uint64) []uint64 {
	if bound == 0 {
		panic("testutil: invalid bound 0 for Ints")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint64, n)
	for i := range out {
		out[i] = r.rand.Uint64() % bound
	}
	return out
}

// WidthInts returns n values that each fit in width bits (0..64).
func (r *RNG) WidthInts(n, width int) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var mask uint64
	if width >= 64 {
		mask = math.MaxUint64
	} else {
		mask = (uint64(1) << uint(width)) - 1
	}

	out := make([]uint64, n)
	for i := range out {
		out[i] = r.rand.Uint64() & mask
	}
	return out
}

// Zipf returns a value in [0, n) with P(k) proportional to 1/(k+1)^s.
// Larger s concentrates more mass on small values.
func (r *RNG) Zipf(n int, s float64) int {
	if n <= 1 {
		return 0
	}
	cdf := zipfCDF(n, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sampleLocked(cdf)
}

// ZipfInts generates n values in [0, distinct) with a Zipfian skew, the
// shape of term frequencies in real posting lists.
func (r *RNG) ZipfInts(n, distinct int, s float64) []uint64 {
	out := make([]uint64, n)
	if distinct <= 1 {
		return out
	}
	cdf := zipfCDF(distinct, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out {
		out[i] = uint64(r.sampleLocked(cdf))
	}
	return out
}

// zipfCDF returns the unnormalized cumulative weights of k in [0, n).
func zipfCDF(n int, s float64) []float64 {
	cdf := make([]float64, n)
	var total float64
	for k := range cdf {
		total += math.Pow(float64(k+1), -s)
		cdf[k] = total
	}
	return cdf
}

// sampleLocked draws an index from cdf. The caller holds r.mu.
func (r *RNG) sampleLocked(cdf []float64) int {
	u := r.rand.Float64() * cdf[len(cdf)-1]
	return min(sort.SearchFloat64s(cdf, u), len(cdf)-1)
}
