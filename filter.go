package vptree

import "github.com/RoaringBitmap/roaring/v2"

// FilterFunc is a function type used for filtering search candidates by
// original insertion index. Returning true keeps the candidate eligible.
//
// Filtering narrows admission only; the tree walk itself is unchanged, so a
// filtered query is still exact over the eligible subset.
type FilterFunc func(index int) bool

// AllowList returns a FilterFunc that admits only indices present in bm.
func AllowList(bm *roaring.Bitmap) FilterFunc {
	return func(index int) bool {
		return bm.Contains(uint32(index))
	}
}

// DenyList returns a FilterFunc that rejects all indices present in bm.
func DenyList(bm *roaring.Bitmap) FilterFunc {
	return func(index int) bool {
		return !bm.Contains(uint32(index))
	}
}
