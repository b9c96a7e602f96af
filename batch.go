package vptree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchKNNSearch runs one KNNSearch per target and returns the result rows
// in target order.
//
// Queries fan out across at most Options.MaxConcurrency goroutines; each
// worker only reads shared tree state. The first error cancels the remaining
// queries and is returned.
func (t *Tree[T]) BatchKNNSearch(ctx context.Context, targets []T, k int, optFns ...func(o *SearchOptions)) ([][]Result[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, ErrInvalidK
	}

	results := make([][]Result[T], len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.maxConcurrency)

	for i, target := range targets {
		g.Go(func() error {
			res, err := t.KNNSearch(gctx, target, k, optFns...)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	err := g.Wait()
	t.logger.LogBatchSearch(ctx, len(targets), k, err)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// NeighborGraph computes the k nearest neighbors of every stored point
// against the tree itself, excluding the point's own entry. Row i holds the
// neighbors of the point inserted at index i, ordered by ascending distance.
//
// This is the k-NN graph an embedding pipeline consumes. An additional
// Filter narrows the eligible neighbor set further; self-exclusion is always
// applied.
func (t *Tree[T]) NeighborGraph(ctx context.Context, k int, optFns ...func(o *SearchOptions)) ([][]Result[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, ErrInvalidK
	}

	opts := SearchOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	rows := make([][]Result[T], len(t.items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.maxConcurrency)

	for i := range t.items {
		it := &t.items[i]
		g.Go(func() error {
			self := int(it.index)
			res, err := t.KNNSearch(gctx, it.point, k, func(o *SearchOptions) {
				o.Filter = func(index int) bool {
					if index == self {
						return false
					}
					return opts.Filter == nil || opts.Filter(index)
				}
			})
			if err != nil {
				return err
			}
			rows[self] = res
			return nil
		})
	}

	err := g.Wait()
	t.logger.LogNeighborGraph(ctx, len(t.items), k, err)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
