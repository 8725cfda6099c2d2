package growth

import "iter"

// Queue is a FIFO queue backed by a ring buffer that doubles in size when full. It is not safe
// for concurrent use.
type Queue[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// NewQueue returns an empty Queue with room for capacity items before it has to grow.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{items: make([]T, capacity)}
}

// Push appends an item to the back of the queue.
func (q *Queue[T]) Push(item T) {
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	q.size++
}

// Pop removes and returns the oldest item. The boolean ok is false if the queue is empty.
func (q *Queue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	return q.size
}

// Clear drops every item in the queue and returns how many were dropped.
func (q *Queue[T]) Clear() int {
	n := q.size
	clear(q.items)
	q.head, q.tail, q.size = 0, 0, 0
	return n
}

// Iter yields the items in the queue from oldest to newest.
func (q *Queue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// grow doubles the backing buffer, moving the items so that the oldest sits at index 0.
func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)*2)
	for index := range q.size {
		items[index] = q.items[(q.head+index)%len(q.items)]
	}
	q.items = items
	q.head = 0
	q.tail = q.size
}
