// Package queue provides the bounded candidate heap used by k-NN search.
package queue

// Candidate represents one search candidate: an item slot in the tree arena
// and its distance to the query target.
type Candidate struct {
	Index    int32   // Index is the item slot the candidate refers to.
	Distance float64 // Distance is the priority of the candidate in the queue.
}

// CandidateQueue is a bounded max-heap of candidates ordered by distance,
// with the worst retained candidate on top. Storage is value-based for cache
// locality and zero per-push allocations; sift operations are implemented
// directly instead of going through container/heap.
type CandidateQueue struct {
	items []Candidate
}

// New initializes a candidate queue with the given capacity.
func New(capacity int) *CandidateQueue {
	return &CandidateQueue{
		items: make([]Candidate, 0, capacity),
	}
}

// Len returns the number of candidates in the queue.
func (cq *CandidateQueue) Len() int { return len(cq.items) }

// Top returns the worst retained candidate.
func (cq *CandidateQueue) Top() (Candidate, bool) {
	if len(cq.items) == 0 {
		return Candidate{}, false
	}
	return cq.items[0], true
}

// Push inserts a candidate while maintaining the heap invariant.
func (cq *CandidateQueue) Push(c Candidate) {
	cq.items = append(cq.items, c)
	cq.siftUp(len(cq.items) - 1)
}

// PushBounded inserts a candidate into a heap bounded at capacity.
// If the heap is full and the candidate is no better than the current worst,
// it is skipped; if it is better, it replaces the worst.
func (cq *CandidateQueue) PushBounded(c Candidate, capacity int) {
	if len(cq.items) < capacity {
		cq.Push(c)
		return
	}

	if c.Distance < cq.items[0].Distance {
		cq.items[0] = c
		cq.siftDown(0)
	}
}

// Pop removes and returns the worst retained candidate.
func (cq *CandidateQueue) Pop() (Candidate, bool) {
	n := len(cq.items)
	if n == 0 {
		return Candidate{}, false
	}

	root := cq.items[0]
	last := cq.items[n-1]
	cq.items = cq.items[:n-1]
	if n-1 > 0 {
		cq.items[0] = last
		cq.siftDown(0)
	}

	return root, true
}

func (cq *CandidateQueue) less(i, j int) bool {
	return cq.items[i].Distance > cq.items[j].Distance
}

func (cq *CandidateQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !cq.less(i, p) {
			return
		}
		cq.items[i], cq.items[p] = cq.items[p], cq.items[i]
		i = p
	}
}

func (cq *CandidateQueue) siftDown(i int) {
	n := len(cq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && cq.less(r, l) {
			best = r
		}
		if !cq.less(best, i) {
			return
		}
		cq.items[i], cq.items[best] = cq.items[best], cq.items[i]
		i = best
	}
}
