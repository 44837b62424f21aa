package queue

import (
	"container/heap"
)

type Item struct {
	ItemId      int     // point id of this item
	Priority    float64 // distance from origin to this point
	Predecessor int     // point id of the predecessor
	Index       int     // index of the item in the heap
}

// A Queue implements the heap.Interface and hold PriorityQueueItems
type Queue []*Item

func NewQueueItem(itemId int, priority float64, predecessor int) *Item {
	return &Item{ItemId: itemId, Priority: priority, Predecessor: predecessor, Index: -1}
}

func NewQueue(initialItem *Item) *Queue {
	pq := make(Queue, 0)
	heap.Init(&pq)
	if initialItem != nil {
		heap.Push(&pq, initialItem)
	}
	return &pq
}

func (h Queue) Len() int {
	return len(h)
}

func (h Queue) Less(i, j int) bool {
	// MinHeap implementation
	return h[i].Priority < h[j].Priority
}

func (h Queue) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index, h[j].Index = i, j
}

func (h *Queue) Push(item interface{}) {
	n := len(*h)
	pqItem := item.(*Item)
	pqItem.Index = n
	*h = append(*h, pqItem)
}

func (h *Queue) Pop() interface{} {
	old := *h
	n := len(old)
	pqItem := old[n-1]
	old[n-1] = nil
	pqItem.Index = -1 // for safety
	*h = old[0 : n-1]
	return pqItem
}

// Change the priority of an item that is still queued
func (h *Queue) Update(pqItem *Item, newPriority float64, predecessor int) {
	pqItem.Priority = newPriority
	pqItem.Predecessor = predecessor
	heap.Fix(h, pqItem.Index)
}

// Queue the item, or lower its priority if it is already queued with a higher one.
// Returns false if the item was not changed. Items that were already popped
// are queued again, callers have to track settled items themselves.
func (h *Queue) PushOrDecrease(pqItem *Item, priority float64, predecessor int) bool {
	if pqItem.Index < 0 {
		pqItem.Priority = priority
		pqItem.Predecessor = predecessor
		heap.Push(h, pqItem)
		return true
	}
	if priority >= pqItem.Priority {
		return false
	}
	h.Update(pqItem, priority, predecessor)
	return true
}

func (h *Queue) PopItem() *Item {
	return heap.Pop(h).(*Item)
}
