package vptree

import (
	"github.com/hupe1980/vptree/internal/queue"
)

// searcher holds the transient state of one k-NN query: the target, the
// result bound, the shrinking pruning radius tau and a bounded max-heap of
// the best candidates found so far. A searcher lives for exactly one query
// and only reads shared tree state, which is what makes concurrent queries
// against one tree safe.
type searcher[T any] struct {
	tree       *Tree[T]
	target     T
	k          int
	tau        float64
	candidates *queue.CandidateQueue
	filter     FilterFunc

	distanceCalls int
}

// visit walks the subtree rooted at arena index ni, admitting candidates and
// pruning subtrees that the triangle inequality proves cannot contain a
// better candidate than the current worst retained one.
func (s *searcher[T]) visit(ni int32) error {
	t := s.tree
	n := t.nodes[ni]

	dist, err := t.distance(s.target, t.items[n.item].point)
	if err != nil {
		return err
	}
	s.distanceCalls++

	if s.filter == nil || s.filter(int(t.items[n.item].index)) {
		s.candidates.PushBounded(queue.Candidate{Index: n.item, Distance: dist}, s.k)
		if s.candidates.Len() == s.k {
			// tau is the tightest known bound on the k-th nearest distance.
			top, _ := s.candidates.Top()
			s.tau = top.Distance
		}
	}

	if n.left == leaf && n.right == leaf {
		return nil
	}

	// Descend into the more promising side first so tau tightens before the
	// sibling visit.
	if dist < n.threshold {
		if n.left != leaf && dist-s.tau <= n.threshold {
			if err := s.visit(n.left); err != nil {
				return err
			}
		}
		if n.right != leaf && dist+s.tau >= n.threshold {
			if err := s.visit(n.right); err != nil {
				return err
			}
		}
	} else {
		if n.right != leaf && dist+s.tau >= n.threshold {
			if err := s.visit(n.right); err != nil {
				return err
			}
		}
		if n.left != leaf && dist-s.tau <= n.threshold {
			if err := s.visit(n.left); err != nil {
				return err
			}
		}
	}

	return nil
}

// results drains the candidate heap, worst first, filling the slice from the
// back so the caller receives results in ascending distance order.
func (s *searcher[T]) results() []Result[T] {
	results := make([]Result[T], s.candidates.Len())
	for i := s.candidates.Len() - 1; i >= 0; i-- {
		c, _ := s.candidates.Pop()
		it := s.tree.items[c.Index]
		results[i] = Result[T]{
			Point:    it.point,
			Index:    int(it.index),
			Distance: c.Distance,
		}
	}

	return results
}
