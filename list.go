package twin

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/gobwas/twin/internal/container"
)

// list is a FIFO notification list.
//
// Waiters are kept in a heap of twins holding the waiter and its ticket.
// Tickets grow monotonically, so the heap ordered by the second field with
// the least ticket on top releases waiters in the arrival order.
type list struct {
	mu     sync.Mutex
	heap   container.Heap[Twin[*waiter, uint64]]
	ticket uint64
}

func (l *list) init() {
	if l.heap.Less != nil {
		return
	}
	l.heap.Less = Greater[*waiter, uint64]
	l.heap.Index = func(x Twin[*waiter, uint64], i int) {
		x.First.pos = i
	}
}

// add puts a new waiter into the list.
func (l *list) add() *waiter {
	w := acquireWaiter()

	l.mu.Lock()
	l.init()
	l.ticket++
	l.heap.Push(Make(w, l.ticket))
	l.mu.Unlock()

	return w
}

// wait blocks until w is notified or ctx is done.
func (l *list) wait(ctx context.Context, w *waiter) error {
	done := ctx.Done()
	if done == nil {
		<-w.c
		releaseWaiter(w)
		return nil
	}
	select {
	case <-w.c:
		releaseWaiter(w)
		return nil
	case <-done:
	}

	l.mu.Lock()
	_, evicted := l.heap.Remove(w.pos)
	l.mu.Unlock()

	if !evicted {
		// Waiter was already popped by notify() and we lost the race with
		// it. Interpret this as a successful wait so the notification is not
		// dropped.
		<-w.c
		releaseWaiter(w)
		return nil
	}
	releaseWaiter(w)

	return errors.Join(ErrCanceled, ctx.Err())
}

func (l *list) notify() {
	l.mu.Lock()
	x, ok := l.heap.Pop()
	l.mu.Unlock()
	if ok {
		x.First.notify()
	}
}

func (l *list) notifyAll() {
	l.mu.Lock()
	xs := l.heap.Drain()
	l.mu.Unlock()
	for _, x := range xs {
		x.First.notify()
	}
}

var wp sync.Pool

type waiter struct {
	c chan struct{}

	// pos is the position within the list's heap.
	// It MUST be accessed with list.mu held.
	pos int
}

func (w *waiter) notify() {
	w.c <- struct{}{}
}

func acquireWaiter() *waiter {
	if w, ok := wp.Get().(*waiter); ok {
		return w
	}
	return &waiter{
		c:   make(chan struct{}, 1),
		pos: -1,
	}
}

func releaseWaiter(w *waiter) {
	w.pos = -1
	wp.Put(w)
}
