package twin

import (
	"golang.org/x/exp/constraints"

	"github.com/gobwas/twin/internal/container"
)

// Heap is a binary heap of twins.
//
// Heap keeps the greatest twin with respect to its comparator on top.
// Heap-equivalent twins are popped in unspecified order relative to each
// other.
//
// Heap is not safe for concurrent use.
type Heap[A, B any] struct {
	h container.Heap[Twin[A, B]]
}

// NewHeap returns a heap which pops twins in descending order with respect
// to cmp.
func NewHeap[A, B any](cmp Comparator[Twin[A, B]]) *Heap[A, B] {
	if cmp == nil {
		panic("twin: nil heap comparator")
	}
	return &Heap[A, B]{
		h: container.Heap[Twin[A, B]]{
			Less: cmp,
		},
	}
}

// NewMinHeap returns a heap which pops the twin with the smallest second
// field first.
func NewMinHeap[A any, B constraints.Ordered]() *Heap[A, B] {
	return NewHeap[A, B](Greater[A, B])
}

// NewMaxHeap returns a heap which pops the twin with the greatest second
// field first.
func NewMaxHeap[A any, B constraints.Ordered]() *Heap[A, B] {
	return NewHeap[A, B](Less[A, B])
}

// Push adds t to the heap.
func (h *Heap[A, B]) Push(t Twin[A, B]) {
	h.h.Push(t)
}

// Pop removes and returns the top twin. It returns false if heap is empty.
func (h *Heap[A, B]) Pop() (Twin[A, B], bool) {
	return h.h.Pop()
}

// Top returns the top twin without removing it.
func (h *Heap[A, B]) Top() (Twin[A, B], bool) {
	return h.h.Top()
}

// Len returns the number of twins in the heap.
func (h *Heap[A, B]) Len() int {
	return h.h.Size()
}

// Reserve preallocates space for n twins.
func (h *Heap[A, B]) Reserve(n int) {
	h.h.Reserve(n)
}
