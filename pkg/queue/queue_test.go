package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id       int
	priority float64
	index    int
}

func (i *testItem) Priority() float64  { return i.priority }
func (i *testItem) Index() int         { return i.index }
func (i *testItem) SetIndex(index int) { i.index = index }
func (i *testItem) String() string     { return fmt.Sprintf("%v:%v ", i.id, i.priority) }

func TestMinHeapOrder(t *testing.T) {
	items := []*testItem{{id: 0, priority: 3.5}, {id: 1, priority: 0.25}, {id: 2, priority: 7}}
	h := NewMinHeap(items)
	h.Push(&testItem{id: 3, priority: 1})

	require.Equal(t, 4, h.Len())
	assert.Equal(t, 1, h.Peek().id)

	order := make([]int, 0)
	for h.Len() > 0 {
		item := h.Pop()
		assert.Equal(t, -1, item.Index())
		order = append(order, item.id)
	}
	assert.Equal(t, []int{1, 3, 0, 2}, order)
}

func TestMinHeapUpdate(t *testing.T) {
	items := []*testItem{{id: 0, priority: 3}, {id: 1, priority: 2}, {id: 2, priority: 1}}
	h := NewMinHeap(items)

	items[0].priority = 0.5
	h.Update(items[0])
	assert.Equal(t, 0, h.Pop().id)

	h.Remove(items[1].Index())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 2, h.Pop().id)
}

func TestMinHeapPeekAtOutOfBounds(t *testing.T) {
	h := NewMinHeap([]*testItem{})
	assert.Panics(t, func() { h.PeekAt(0) })
}

func TestQueuePushOrDecrease(t *testing.T) {
	pq := NewQueue(NewQueueItem(0, 0, -1))
	a := NewQueueItem(1, 0, -1)
	b := NewQueueItem(2, 0, -1)

	assert.True(t, pq.PushOrDecrease(a, 10, 0))
	assert.True(t, pq.PushOrDecrease(b, 4, 0))
	assert.False(t, pq.PushOrDecrease(b, 6, 1))
	assert.True(t, pq.PushOrDecrease(a, 2.5, 2))
	require.Equal(t, 3, pq.Len())

	assert.Equal(t, 0, pq.PopItem().ItemId)
	first := pq.PopItem()
	assert.Equal(t, 1, first.ItemId)
	assert.Equal(t, 2.5, first.Priority)
	assert.Equal(t, 2, first.Predecessor)
	assert.Equal(t, -1, first.Index)

	second := pq.PopItem()
	assert.Equal(t, 2, second.ItemId)
	assert.Equal(t, 0, second.Predecessor)
	assert.Equal(t, 0, pq.Len())
}
