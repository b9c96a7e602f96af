package vptree

import (
	"context"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/vptree/internal/queue"
)

// SearchOptions contains options for search operations.
type SearchOptions struct {
	// Filter restricts candidates by original insertion index.
	// Nil means every stored point is eligible.
	Filter FilterFunc
}

// KNNSearch performs a K-nearest neighbor search around target.
//
// It returns the min(k, Len()) nearest stored points ordered by ascending
// distance. k == 0 yields an empty result without touching the tree and a
// negative k returns ErrInvalidK. Points at equal distance have no defined
// relative order. A distance error aborts the query with no partial results.
func (t *Tree[T]) KNNSearch(ctx context.Context, target T, k int, optFns ...func(o *SearchOptions)) ([]Result[T], error) {
	start := time.Now()

	opts := SearchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if k < 0 {
		t.metrics.RecordSearch(k, time.Since(start), 0, ErrInvalidK)
		t.logger.LogSearch(ctx, k, 0, ErrInvalidK)
		return nil, ErrInvalidK
	}
	if k == 0 {
		t.metrics.RecordSearch(k, time.Since(start), 0, nil)
		t.logger.LogSearch(ctx, k, 0, nil)
		return []Result[T]{}, nil
	}

	actualK := k
	if actualK > len(t.items) {
		actualK = len(t.items)
	}

	s := &searcher[T]{
		tree:       t,
		target:     target,
		k:          actualK,
		tau:        math.Inf(1),
		candidates: queue.New(actualK),
		filter:     opts.Filter,
	}

	if err := s.visit(0); err != nil {
		t.metrics.RecordSearch(k, time.Since(start), s.distanceCalls, err)
		t.logger.LogSearch(ctx, k, 0, err)
		return nil, err
	}

	results := s.results()
	t.metrics.RecordSearch(k, time.Since(start), s.distanceCalls, nil)
	t.logger.LogSearch(ctx, k, len(results), nil)
	return results, nil
}

// KNNSearchStream returns an iterator over K-nearest neighbor search results.
// Results are yielded in order from nearest to farthest.
// The iterator supports early termination - stop iterating to cancel.
//
// Example:
//
//	for result, err := range tree.KNNSearchStream(ctx, target, 100) {
//	    if err != nil {
//	        return err
//	    }
//	    if result.Distance > threshold {
//	        break // Early termination
//	    }
//	    process(result)
//	}
func (t *Tree[T]) KNNSearchStream(ctx context.Context, target T, k int, optFns ...func(o *SearchOptions)) iter.Seq2[Result[T], error] {
	return func(yield func(Result[T], error) bool) {
		results, err := t.KNNSearch(ctx, target, k, optFns...)
		if err != nil {
			yield(Result[T]{}, err)
			return
		}

		for _, result := range results {
			if !yield(result, nil) {
				return // Early termination
			}
		}
	}
}

// BruteSearch performs an exhaustive linear scan instead of a tree walk.
//
// Semantics match KNNSearch exactly; it exists as ground truth for tests and
// as the cheaper choice for very small trees.
func (t *Tree[T]) BruteSearch(ctx context.Context, target T, k int, optFns ...func(o *SearchOptions)) ([]Result[T], error) {
	opts := SearchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if k < 0 {
		return nil, ErrInvalidK
	}
	if k == 0 {
		return []Result[T]{}, nil
	}

	actualK := k
	if actualK > len(t.items) {
		actualK = len(t.items)
	}

	topCandidates := queue.New(actualK)
	for i := range t.items {
		it := &t.items[i]
		if opts.Filter != nil && !opts.Filter(int(it.index)) {
			continue
		}

		dist, err := t.distance(target, it.point)
		if err != nil {
			return nil, err
		}

		topCandidates.PushBounded(queue.Candidate{Index: int32(i), Distance: dist}, actualK)
	}

	results := make([]Result[T], topCandidates.Len())
	for i := topCandidates.Len() - 1; i >= 0; i-- {
		c, _ := topCandidates.Pop()
		it := t.items[c.Index]
		results[i] = Result[T]{
			Point:    it.point,
			Index:    int(it.index),
			Distance: c.Distance,
		}
	}

	return results, nil
}
