package invindex

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/compactvec"
	"github.com/hupe1980/compactvec/internal/conv"
)

// Index maps every distinct value of a vector to the positions holding it.
//
// An Index is a snapshot: later writes to the source vector are not
// reflected. It is safe for concurrent readers.
type Index struct {
	postings map[uint64]*roaring.Bitmap
	len      int
}

// Build indexes cv. Positions are stored as uint32, so vectors longer than
// math.MaxUint32+1 elements are rejected with an error matching
// conv.ErrOverflow.
func Build(cv *compactvec.CompactVector) (*Index, error) {
	idx := &Index{
		postings: make(map[uint64]*roaring.Bitmap),
		len:      cv.Len(),
	}
	if cv.Len() == 0 {
		return idx, nil
	}
	if _, err := conv.IntToUint32(cv.Len() - 1); err != nil {
		return nil, fmt.Errorf("index %d elements: %w", cv.Len(), err)
	}

	var pos uint32
	for _, v := range cv.All() {
		rb, ok := idx.postings[v]
		if !ok {
			rb = roaring.New()
			idx.postings[v] = rb
		}
		rb.Add(pos)
		pos++
	}

	for _, rb := range idx.postings {
		rb.RunOptimize()
	}
	return idx, nil
}

// Len returns the length of the indexed vector.
func (idx *Index) Len() int {
	return idx.len
}

// Cardinality returns the number of distinct values.
func (idx *Index) Cardinality() int {
	return len(idx.postings)
}

// Positions returns the positions holding value, in ascending order.
// The returned bitmap is a copy and may be modified by the caller.
func (idx *Index) Positions(value uint64) *roaring.Bitmap {
	if rb, ok := idx.postings[value]; ok {
		return rb.Clone()
	}
	return roaring.New()
}

// Count returns how many positions hold value.
func (idx *Index) Count(value uint64) uint64 {
	if rb, ok := idx.postings[value]; ok {
		return rb.GetCardinality()
	}
	return 0
}

// Contains reports whether position pos holds value.
func (idx *Index) Contains(value uint64, pos int) bool {
	rb, ok := idx.postings[value]
	if !ok {
		return false
	}
	p, err := conv.IntToUint32(pos)
	if err != nil {
		return false
	}
	return rb.Contains(p)
}

// Values returns the distinct values in ascending order.
func (idx *Index) Values() []uint64 {
	return slices.Sorted(maps.Keys(idx.postings))
}

// Union returns the positions holding any of values.
func (idx *Index) Union(values ...uint64) *roaring.Bitmap {
	bms := make([]*roaring.Bitmap, 0, len(values))
	for _, v := range values {
		if rb, ok := idx.postings[v]; ok {
			bms = append(bms, rb)
		}
	}
	return roaring.FastOr(bms...)
}

// Postings iterates over (value, positions) pairs in ascending value order.
// The yielded bitmaps are shared with the index and must not be modified.
func (idx *Index) Postings() iter.Seq2[uint64, *roaring.Bitmap] {
	return func(yield func(uint64, *roaring.Bitmap) bool) {
		for _, v := range idx.Values() {
			if !yield(v, idx.postings[v]) {
				return
			}
		}
	}
}

// SizeInBytes estimates the memory held by the posting lists.
func (idx *Index) SizeInBytes() uint64 {
	var n uint64
	for _, rb := range idx.postings {
		n += rb.GetSizeInBytes()
	}
	return n
}
