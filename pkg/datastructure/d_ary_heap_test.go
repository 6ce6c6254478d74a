package datastructure

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapExtractsInRankOrder(t *testing.T) {
	h := NewFourAryHeap[int64]()
	rng := rand.New(rand.NewSource(1))

	n := 200
	for i := 0; i < n; i++ {
		rank := rng.Float64() * 100
		h.Insert(NewPriorityQueueNode(rank, int64(i), int64(i)))
	}

	prev := -1.0
	for !h.IsEmpty() {
		min, err := h.ExtractMin()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, min.GetRank(), prev)
		prev = min.GetRank()
	}
}

func TestHeapEqualRanksOrderedByTie(t *testing.T) {
	h := NewFourAryHeap[int64]()
	for _, id := range []int64{5, 3, 9, 1, 7} {
		h.Insert(NewPriorityQueueNode(1.0, id, id))
	}

	got := make([]int64, 0, 5)
	for !h.IsEmpty() {
		min, _ := h.ExtractMin()
		got = append(got, min.GetItem())
	}
	assert.Equal(t, []int64{1, 3, 5, 7, 9}, got)
}

func TestHeapDecreaseKey(t *testing.T) {
	h := NewFourAryHeap[int64]()

	a := NewPriorityQueueNode(10.0, 1, int64(1))
	b := NewPriorityQueueNode(20.0, 2, int64(2))
	h.Insert(a)
	h.Insert(b)

	require.NoError(t, h.DecreaseKey(b, 5.0))

	min, _ := h.ExtractMin()
	assert.Equal(t, int64(2), min.GetItem())
	assert.Equal(t, 5.0, min.GetRank())
}

func TestHeapExtractFromEmpty(t *testing.T) {
	h := NewFourAryHeap[int64]()
	_, err := h.ExtractMin()
	assert.Error(t, err)
}
