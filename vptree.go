package vptree

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hupe1980/vptree/metric"
)

// leaf is the reserved arena index marking an absent child.
const leaf int32 = -1

// DistanceFunc represents a function for calculating the distance between two points.
//
// It must be deterministic, non-negative and symmetric, and it must satisfy
// the triangle inequality; search pruning is only correct for true metrics.
// A dimension mismatch or similar shape error must be reported as an error,
// never silently computed.
type DistanceFunc[T any] func(a, b T) (float64, error)

// item pairs a stored point with its original insertion index. Construction
// permutes the item slice in place; the index keeps identity stable.
type item[T any] struct {
	point T
	index int32
}

// node is one slot in the node arena. Children reference arena positions,
// leaf meaning no child. Points reachable through left lie within threshold
// of the vantage point, points through right at or beyond it.
type node struct {
	item      int32
	threshold float64
	left      int32
	right     int32
}

// Result represents a search result.
type Result[T any] struct {
	// Point is the matched point. It is a view into tree storage and must
	// be treated as read-only.
	Point T

	// Index is the point's position in the original input sequence.
	Index int

	// Distance is the distance between the query target and the point.
	Distance float64
}

// Tree is a vantage-point tree: an index over a fixed set of points in a
// metric space, answering exact k-nearest-neighbor queries with
// branch-and-bound pruning based on the triangle inequality.
//
// A Tree is built once and is immutable afterwards. Any number of queries
// may run concurrently against the same Tree without locking.
type Tree[T any] struct {
	items    []item[T]
	nodes    []node
	distance DistanceFunc[T]

	logger         *Logger
	metrics        MetricsCollector
	maxConcurrency int
}

// New builds a Tree over points using the given distance function.
//
// The input slice is not modified; point values are stored as given and must
// not be mutated by the caller afterwards. Building from zero points returns
// ErrNoPoints. A distance error during construction aborts the build and no
// tree is returned.
func New[T any](points []T, distance DistanceFunc[T], optFns ...func(o *Options)) (*Tree[T], error) {
	start := time.Now()
	opts := applyOptions(optFns)

	if distance == nil {
		return nil, fmt.Errorf("vptree: distance function is required")
	}

	if len(points) == 0 {
		opts.Metrics.RecordBuild(0, time.Since(start), ErrNoPoints)
		opts.Logger.LogBuild(0, ErrNoPoints)
		return nil, ErrNoPoints
	}

	var rng *rand.Rand
	if opts.RandomSeed != nil {
		rng = rand.New(rand.NewSource(*opts.RandomSeed)) // nolint gosec
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint gosec
	}

	t := &Tree[T]{
		items:          make([]item[T], len(points)),
		nodes:          make([]node, 0, len(points)),
		distance:       distance,
		logger:         opts.Logger,
		metrics:        opts.Metrics,
		maxConcurrency: opts.MaxConcurrency,
	}
	for i, p := range points {
		t.items[i] = item[T]{point: p, index: int32(i)}
	}

	b := &builder[T]{
		tree:  t,
		rng:   rng,
		dists: make([]float64, len(points)),
	}
	if _, err := b.build(0, len(points)); err != nil {
		t.metrics.RecordBuild(len(points), time.Since(start), err)
		t.logger.LogBuild(len(points), err)
		return nil, err
	}

	t.metrics.RecordBuild(len(points), time.Since(start), nil)
	t.logger.LogBuild(len(points), nil)
	return t, nil
}

// NewEuclidean builds a Tree over float64 vectors using metric.Euclidean.
// All vectors must share one dimensionality.
func NewEuclidean(points [][]float64, optFns ...func(o *Options)) (*Tree[[]float64], error) {
	return New(points, metric.Euclidean, optFns...)
}

// Len returns the number of stored points.
func (t *Tree[T]) Len() int {
	return len(t.items)
}

// Stats describes the shape of a built tree.
type Stats struct {
	// Count is the number of stored points.
	Count int

	// Height is the number of nodes on the longest root-to-leaf path.
	// Expected O(log Count) under randomized vantage selection.
	Height int
}

// Stats returns structural statistics about the tree.
func (t *Tree[T]) Stats() Stats {
	return Stats{
		Count:  len(t.items),
		Height: t.height(0),
	}
}

func (t *Tree[T]) height(ni int32) int {
	if ni == leaf {
		return 0
	}

	hl := t.height(t.nodes[ni].left)
	hr := t.height(t.nodes[ni].right)
	if hl > hr {
		return hl + 1
	}
	return hr + 1
}

// builder holds build-only state: the vantage point RNG and a scratch slice
// of distances to the current vantage point, permuted alongside the items.
type builder[T any] struct {
	tree  *Tree[T]
	rng   *rand.Rand
	dists []float64
}

// build constructs the subtree over the half-open item range [lower, upper)
// and returns its arena index. Nodes are appended in preorder, so the node
// built from item slot i always lands in arena slot i.
func (b *builder[T]) build(lower, upper int) (int32, error) {
	if lower == upper {
		return leaf, nil
	}

	t := b.tree

	if upper-lower > 1 {
		// Random vantage selection keeps the expected depth logarithmic
		// even for adversarially ordered input.
		pivot := lower + b.rng.Intn(upper-lower)
		t.items[lower], t.items[pivot] = t.items[pivot], t.items[lower]
	}

	pos := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{item: int32(lower), left: leaf, right: leaf})

	if upper-lower == 1 {
		return pos, nil
	}

	vantage := t.items[lower].point
	for i := lower + 1; i < upper; i++ {
		d, err := t.distance(vantage, t.items[i].point)
		if err != nil {
			return leaf, err
		}
		b.dists[i] = d
	}

	// Median split: the boundary item itself goes to the far side.
	median := (lower + upper) / 2
	b.selectKth(lower+1, upper, median)
	t.nodes[pos].threshold = b.dists[median]

	left, err := b.build(lower+1, median)
	if err != nil {
		return leaf, err
	}
	t.nodes[pos].left = left

	right, err := b.build(median, upper)
	if err != nil {
		return leaf, err
	}
	t.nodes[pos].right = right

	return pos, nil
}

// selectKth reorders items[lo:hi] and the parallel distance slice so that the
// element at position k is the one that would be there in a fully sorted
// sequence: no element before it has a larger distance and no element after
// it has a smaller one. This is Hoare's QuickSelect, without recursion.
func (b *builder[T]) selectKth(lo, hi, k int) {
	t := b.tree

	from, to := lo, hi-1
	for from < to {
		r, w := from, to
		mid := b.dists[(r+w)/2]
		for r < w {
			if b.dists[r] >= mid {
				// Swap large values to the end.
				b.dists[r], b.dists[w] = b.dists[w], b.dists[r]
				t.items[r], t.items[w] = t.items[w], t.items[r]
				w--
			} else {
				r++
			}
		}

		// If we stepped up (r++) we must step down.
		if b.dists[r] > mid {
			r--
		}

		if k <= r {
			to = r
		} else {
			from = r + 1
		}
	}
}
