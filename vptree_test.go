package vptree

import (
	"context"
	"math"
	"testing"

	"github.com/hupe1980/vptree/metric"
	"github.com/hupe1980/vptree/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("NoPoints", func(t *testing.T) {
		_, err := NewEuclidean(nil)
		require.ErrorIs(t, err, ErrNoPoints)

		_, err = NewEuclidean([][]float64{})
		require.ErrorIs(t, err, ErrNoPoints)
	})

	t.Run("NilDistanceFunc", func(t *testing.T) {
		_, err := New[[]float64]([][]float64{{1}}, nil)
		require.Error(t, err)
	})

	t.Run("SinglePoint", func(t *testing.T) {
		tree, err := NewEuclidean([][]float64{{1, 2}})
		require.NoError(t, err)

		assert.Equal(t, 1, tree.Len())
		assert.Equal(t, 1, len(tree.nodes))
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		_, err := NewEuclidean([][]float64{{1, 2}, {1, 2, 3}})
		require.Error(t, err)

		var dm *metric.ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
	})

	t.Run("DistanceErrorAbortsBuild", func(t *testing.T) {
		calls := 0
		_, err := New([][]float64{{1}, {2}, {3}}, func(a, b []float64) (float64, error) {
			calls++
			return 0, assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})
}

// collect returns every item slot reachable from the subtree rooted at ni.
func collect(tr *Tree[[]float64], ni int32) []int32 {
	if ni == leaf {
		return nil
	}
	n := tr.nodes[ni]
	out := []int32{n.item}
	out = append(out, collect(tr, n.left)...)
	out = append(out, collect(tr, n.right)...)
	return out
}

func TestTreeInvariants(t *testing.T) {
	seed := int64(1)
	rng := testutil.NewRNG(42)
	points := rng.GaussianVectors(257, 6)

	tree, err := NewEuclidean(points, func(o *Options) {
		o.RandomSeed = &seed
	})
	require.NoError(t, err)

	t.Run("ArenaAlignment", func(t *testing.T) {
		require.Equal(t, len(tree.items), len(tree.nodes))
		for i, n := range tree.nodes {
			// Preorder construction puts the node built from item slot i
			// into arena slot i.
			assert.Equal(t, int32(i), n.item)
		}
	})

	t.Run("AllItemsReachable", func(t *testing.T) {
		seen := make(map[int32]bool)
		for _, slot := range collect(tree, 0) {
			require.False(t, seen[slot])
			seen[slot] = true
		}
		assert.Equal(t, len(tree.items), len(seen))
	})

	t.Run("OriginalIndicesSurvivePermutation", func(t *testing.T) {
		seen := make(map[int32]bool)
		for _, it := range tree.items {
			require.False(t, seen[it.index])
			seen[it.index] = true
		}
		assert.Equal(t, len(points), len(seen))
	})

	t.Run("MedianSplit", func(t *testing.T) {
		for ni, n := range tree.nodes {
			vantage := tree.items[n.item].point

			for _, slot := range collect(tree, n.left) {
				d, err := metric.Euclidean(vantage, tree.items[slot].point)
				require.NoError(t, err)
				assert.LessOrEqualf(t, d, n.threshold, "node %d left child item %d", ni, slot)
			}
			for _, slot := range collect(tree, n.right) {
				d, err := metric.Euclidean(vantage, tree.items[slot].point)
				require.NoError(t, err)
				assert.GreaterOrEqualf(t, d, n.threshold, "node %d right child item %d", ni, slot)
			}
		}
	})

	t.Run("ThresholdNonNegative", func(t *testing.T) {
		for _, n := range tree.nodes {
			assert.GreaterOrEqual(t, n.threshold, 0.0)
		}
	})
}

func TestDeterministicSeed(t *testing.T) {
	rng := testutil.NewRNG(7)
	points := rng.UniformVectors(100, 4)

	seed := int64(123)
	a, err := NewEuclidean(points, func(o *Options) { o.RandomSeed = &seed })
	require.NoError(t, err)
	b, err := NewEuclidean(points, func(o *Options) { o.RandomSeed = &seed })
	require.NoError(t, err)

	assert.Equal(t, a.nodes, b.nodes)
}

func TestStats(t *testing.T) {
	t.Run("SinglePoint", func(t *testing.T) {
		tree, err := NewEuclidean([][]float64{{0}})
		require.NoError(t, err)

		stats := tree.Stats()
		assert.Equal(t, 1, stats.Count)
		assert.Equal(t, 1, stats.Height)
	})

	t.Run("BalancedByMedianSplit", func(t *testing.T) {
		rng := testutil.NewRNG(11)
		points := rng.UniformVectors(1024, 3)

		tree, err := NewEuclidean(points)
		require.NoError(t, err)

		stats := tree.Stats()
		assert.Equal(t, 1024, stats.Count)

		// The median split halves every range, so the height is within a
		// small constant of log2(n) no matter how the vantage points fall.
		minHeight := int(math.Ceil(math.Log2(1024 + 1)))
		assert.GreaterOrEqual(t, stats.Height, minHeight)
		assert.LessOrEqual(t, stats.Height, 2*minHeight)
	})
}

func TestLen(t *testing.T) {
	rng := testutil.NewRNG(3)
	points := rng.UniformVectors(17, 2)

	tree, err := NewEuclidean(points)
	require.NoError(t, err)

	assert.Equal(t, 17, tree.Len())
}

func TestCustomPointType(t *testing.T) {
	type span struct {
		from, to float64
	}

	overlap := func(a, b span) (float64, error) {
		return math.Abs(a.from-b.from) + math.Abs(a.to-b.to), nil
	}

	spans := []span{{0, 1}, {10, 12}, {0.5, 1.5}, {100, 101}}
	tree, err := New(spans, overlap)
	require.NoError(t, err)

	results, err := tree.KNNSearch(context.Background(), span{0, 1}, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 0.0, results[0].Distance)
	assert.Equal(t, 2, results[1].Index)
	assert.InDelta(t, 1.0, results[1].Distance, 1e-12)
}
