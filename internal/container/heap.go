package container

// Heap is an array-backed binary heap.
//
// Heap keeps the greatest element with respect to Less on its top. To get a
// min-heap, provide Less which reports whether a is greater than b.
//
// The zero value is not usable until Less is set.
type Heap[T any] struct {
	// Less reports whether a must be placed below b.
	Less func(a, b T) bool

	// Index is an optional hook which is called every time element x lands
	// at position i within the heap. When x leaves the heap Index is called
	// with i equal to -1.
	Index func(x T, i int)

	data []T
}

// Push adds x to the heap.
func (h *Heap[T]) Push(x T) {
	i := len(h.data)
	h.data = append(h.data, x)
	h.index(x, i)
	h.siftUp(i)
}

// Pop removes and returns the top element of the heap.
// It returns false if heap is empty.
func (h *Heap[T]) Pop() (x T, ok bool) {
	if len(h.data) == 0 {
		return x, false
	}
	return h.remove(0), true
}

// Top returns the top element without removing it.
func (h *Heap[T]) Top() (x T, ok bool) {
	if len(h.data) == 0 {
		return x, false
	}
	return h.data[0], true
}

// Remove removes the element at position i. Positions are reported through
// the Index hook.
func (h *Heap[T]) Remove(i int) (x T, ok bool) {
	if i < 0 || i >= len(h.data) {
		return x, false
	}
	return h.remove(i), true
}

// Drain removes all elements from the heap and returns them in unspecified
// order.
func (h *Heap[T]) Drain() []T {
	xs := h.data
	h.data = nil
	for _, x := range xs {
		h.index(x, -1)
	}
	return xs
}

// Size returns the number of elements in the heap.
func (h *Heap[T]) Size() int {
	return len(h.data)
}

// Reserve makes heap able to hold at least n elements without reallocation.
func (h *Heap[T]) Reserve(n int) {
	m := len(h.data)
	if cap(h.data) < n {
		d := make([]T, m, n)
		copy(d, h.data)
		h.data = d
	}
}

// IsFull reports whether heap reached its reserved capacity.
func (h *Heap[T]) IsFull() bool {
	return len(h.data) == cap(h.data)
}

// IsEmpty reports whether heap has no elements.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.data) == 0
}

func (h *Heap[T]) remove(i int) T {
	var zero T

	n := len(h.data)
	x := h.data[i]
	h.swap(i, n-1)
	h.data[n-1] = zero
	h.data = h.data[:n-1]
	h.index(x, -1)

	if i < len(h.data) {
		h.fix(i)
	}
	return x
}

func (h *Heap[T]) fix(i int) {
	if p := h.parent(i); i > 0 && h.Less(h.data[p], h.data[i]) {
		h.siftUp(i)
	} else {
		h.siftDown(i)
	}
}

func (h *Heap[T]) swap(i, j int) {
	h.data[i], h.data[j] = h.data[j], h.data[i]
	h.index(h.data[i], i)
	h.index(h.data[j], j)
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		p := h.parent(i)
		if !h.Less(h.data[p], h.data[i]) {
			return
		}
		h.swap(p, i)
		i = p
	}
}

func (h *Heap[T]) siftDown(i int) {
	for {
		max := i
		i1, i2 := h.children(i)
		if i1 < len(h.data) && h.Less(h.data[max], h.data[i1]) {
			max = i1
		}
		if i2 < len(h.data) && h.Less(h.data[max], h.data[i2]) {
			max = i2
		}
		if max == i {
			break
		}
		h.swap(i, max)
		i = max
	}
}

func (h *Heap[T]) index(x T, i int) {
	if h.Index != nil {
		h.Index(x, i)
	}
}

func (h *Heap[T]) parent(x int) int {
	return (x - 1) / 2
}

func (h *Heap[T]) children(x int) (int, int) {
	return 2*x + 1, 2*x + 2
}
