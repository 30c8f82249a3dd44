// Package invindex builds a value-to-positions inverted index over a
// CompactVector.
//
// Each distinct value maps to a roaring bitmap of the positions holding it,
// which keeps posting lists small for the skewed, low-cardinality data
// compact vectors usually carry.
//
//	idx, err := invindex.Build(cv)
//	if err != nil {
//		return err
//	}
//	hits := idx.Positions(42).ToArray() // ascending positions
package invindex
