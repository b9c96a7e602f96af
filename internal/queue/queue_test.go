package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateQueue(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		cq := New(4)
		assert.Equal(t, 0, cq.Len())

		_, ok := cq.Top()
		assert.False(t, ok)

		_, ok = cq.Pop()
		assert.False(t, ok)
	})

	t.Run("Worst on top", func(t *testing.T) {
		cq := New(4)
		cq.Push(Candidate{Index: 0, Distance: 2.0})
		cq.Push(Candidate{Index: 1, Distance: 5.0})
		cq.Push(Candidate{Index: 2, Distance: 1.0})

		top, ok := cq.Top()
		require.True(t, ok)
		assert.Equal(t, 5.0, top.Distance)
		assert.Equal(t, int32(1), top.Index)
	})

	t.Run("Pop yields descending distances", func(t *testing.T) {
		cq := New(8)
		for i, d := range []float64{3, 1, 4, 1.5, 9, 2.6} {
			cq.Push(Candidate{Index: int32(i), Distance: d})
		}

		prev := cq.Len()
		last := float64(1 << 30)
		for cq.Len() > 0 {
			c, ok := cq.Pop()
			require.True(t, ok)
			assert.LessOrEqual(t, c.Distance, last)
			last = c.Distance
		}
		assert.Equal(t, 6, prev)
	})
}

func TestPushBounded(t *testing.T) {
	t.Run("Below capacity pushes", func(t *testing.T) {
		cq := New(3)
		cq.PushBounded(Candidate{Index: 0, Distance: 7}, 3)
		cq.PushBounded(Candidate{Index: 1, Distance: 3}, 3)
		assert.Equal(t, 2, cq.Len())
	})

	t.Run("Full keeps the smallest distances", func(t *testing.T) {
		const k = 5

		rng := rand.New(rand.NewSource(42))
		distances := make([]float64, 100)
		for i := range distances {
			distances[i] = rng.Float64() * 1000
		}

		cq := New(k)
		for i, d := range distances {
			cq.PushBounded(Candidate{Index: int32(i), Distance: d}, k)
		}
		require.Equal(t, k, cq.Len())

		got := make([]float64, 0, k)
		for cq.Len() > 0 {
			c, _ := cq.Pop()
			got = append(got, c.Distance)
		}
		sort.Float64s(got)

		sort.Float64s(distances)
		assert.Equal(t, distances[:k], got)
	})

	t.Run("Worse candidate is skipped when full", func(t *testing.T) {
		cq := New(2)
		cq.PushBounded(Candidate{Index: 0, Distance: 1}, 2)
		cq.PushBounded(Candidate{Index: 1, Distance: 2}, 2)
		cq.PushBounded(Candidate{Index: 2, Distance: 9}, 2)

		require.Equal(t, 2, cq.Len())
		top, _ := cq.Top()
		assert.Equal(t, 2.0, top.Distance)
	})

	t.Run("Equal distance is skipped when full", func(t *testing.T) {
		cq := New(1)
		cq.PushBounded(Candidate{Index: 0, Distance: 1}, 1)
		cq.PushBounded(Candidate{Index: 1, Distance: 1}, 1)

		require.Equal(t, 1, cq.Len())
		top, _ := cq.Top()
		assert.Equal(t, int32(0), top.Index)
	})
}
