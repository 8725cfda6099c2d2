package growth

import (
	"slices"
	"testing"
)

func TestQueueFIFOAcrossGrowth(t *testing.T) {
	q := NewQueue[int](2)
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	// Move the head so the ring wraps before it has to grow.
	if v, _ := q.Pop(); v != 0 {
		t.Fatalf("expected 0, got %d", v)
	}
	for i := 3; i < 10; i++ {
		q.Push(i)
	}
	if q.Len() != 9 {
		t.Fatalf("expected 9 items, got %d", q.Len())
	}
	if got := slices.Collect(q.Iter()); !slices.Equal(got, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}) {
		t.Fatalf("unexpected iteration order %v", got)
	}
	for want := 1; want < 10; want++ {
		v, ok := q.Pop()
		if !ok || v != want {
			t.Fatalf("expected %d, got %d (ok=%v)", want, v, ok)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestQueueDuplicates(t *testing.T) {
	q := NewQueue[string](0)
	q.Push("a")
	q.Push("a")
	if q.Len() != 2 {
		t.Fatalf("expected duplicates to be kept, got %d items", q.Len())
	}
}

func TestQueueClear(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 6; i++ {
		q.Push(i)
	}
	if dropped := q.Clear(); dropped != 6 {
		t.Fatalf("expected 6 dropped, got %d", dropped)
	}
	if q.Len() != 0 {
		t.Fatalf("expected empty queue after clear")
	}
	q.Push(42)
	if v, ok := q.Pop(); !ok || v != 42 {
		t.Fatalf("queue unusable after clear: %d %v", v, ok)
	}
}
