package twin

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/gobwas/twin/internal/container"
)

type item[A, B any] struct {
	t   Twin[A, B]
	seq uint64
}

// Queue is a bounded priority queue of twins.
//
// Twins are received in descending order with respect to Less. Twins which
// are heap-equivalent under Less are received in the order they were sent.
//
// Queue fields must be set before the first use. Queue must not be copied
// after first use.
type Queue[A, B any] struct {
	// Size specifies the capacity of the queue. It must be greater than
	// zero.
	Size int

	// Less specifies the order of the queue. It must be non-nil.
	Less Comparator[Twin[A, B]]

	// Logger is an optional logger for queue lifecycle events.
	Logger *zap.Logger

	// Metrics is an optional queue instrumentation.
	Metrics *Metrics

	once   sync.Once
	mu     sync.Mutex
	snd    Cond
	rcv    Cond
	heap   container.Heap[item[A, B]]
	seq    uint64
	closed bool
}

// NewMinQueue returns a queue of given size which delivers twins with the
// smallest second field first.
func NewMinQueue[A any, B constraints.Ordered](size int) *Queue[A, B] {
	return &Queue[A, B]{
		Size: size,
		Less: Greater[A, B],
	}
}

// NewMaxQueue returns a queue of given size which delivers twins with the
// greatest second field first.
func NewMaxQueue[A any, B constraints.Ordered](size int) *Queue[A, B] {
	return &Queue[A, B]{
		Size: size,
		Less: Less[A, B],
	}
}

func (q *Queue[A, B]) init() {
	q.once.Do(func() {
		if q.Size <= 0 {
			panic("twin: queue size must be >0")
		}
		if q.Less == nil {
			panic("twin: nil queue comparator")
		}
		if q.Logger == nil {
			q.Logger = zap.NewNop()
		}
		less := q.Less
		q.heap.Less = func(a, b item[A, B]) bool {
			if less(a.t, b.t) {
				return true
			}
			if less(b.t, a.t) {
				return false
			}
			// Equivalent twins: the one sent earlier is greater.
			return a.seq > b.seq
		}
		// Heap capacity is exactly Size so IsFull() reports queue overflow.
		q.heap.Reserve(q.Size)
		q.snd.L = &q.mu
		q.rcv.L = &q.mu
	})
}

// Send puts t into the queue. If queue is full it blocks until there is a
// free slot, queue is closed or ctx is done.
func (q *Queue[A, B]) Send(ctx context.Context, t Twin[A, B]) error {
	q.init()

	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.heap.IsFull() {
		if err := q.snd.Wait(ctx); err != nil {
			q.Logger.Debug("send canceled", zap.Error(err))
			q.Metrics.canceled()
			return err
		}
	}
	if q.closed {
		return ErrClosed
	}
	q.seq++
	q.heap.Push(item[A, B]{
		t:   t,
		seq: q.seq,
	})
	q.Metrics.sent(q.heap.Size())
	q.rcv.Signal()

	return nil
}

// Recv receives the greatest twin from the queue. If queue is empty it
// blocks until some twin is sent, queue is closed or ctx is done.
//
// Twins sent before Close() are still received; ErrClosed is returned only
// when closed queue becomes empty.
func (q *Queue[A, B]) Recv(ctx context.Context) (t Twin[A, B], err error) {
	q.init()

	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.heap.IsEmpty() {
		if err = q.rcv.Wait(ctx); err != nil {
			q.Logger.Debug("receive canceled", zap.Error(err))
			q.Metrics.canceled()
			return t, err
		}
	}
	x, ok := q.heap.Pop()
	if !ok {
		return t, ErrClosed
	}
	q.Metrics.received(1, q.heap.Size())
	q.snd.Signal()

	return x.t, nil
}

// RecvTo receives up to len(ts) twins from the queue in descending order.
// It blocks only while queue is empty.
func (q *Queue[A, B]) RecvTo(ctx context.Context, ts []Twin[A, B]) (n int, err error) {
	q.init()
	if len(ts) == 0 {
		return 0, nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.closed && q.heap.IsEmpty() {
		if err = q.rcv.Wait(ctx); err != nil {
			q.Logger.Debug("receive canceled", zap.Error(err))
			q.Metrics.canceled()
			return 0, err
		}
	}
	for ; n < len(ts); n++ {
		x, ok := q.heap.Pop()
		if !ok {
			break
		}
		ts[n] = x.t
		q.snd.Signal()
	}
	if n == 0 {
		return 0, ErrClosed
	}
	q.Metrics.received(n, q.heap.Size())

	return n, nil
}

// Len returns the number of twins in the queue.
func (q *Queue[A, B]) Len() int {
	q.init()

	q.mu.Lock()
	defer q.mu.Unlock()

	return q.heap.Size()
}

// Close closes the queue and wakes up all blocked senders and receivers.
// It is safe to call Close multiple times.
func (q *Queue[A, B]) Close() {
	q.init()

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.Logger.Debug("queue closed", zap.Int("pending", q.heap.Size()))
	q.snd.Broadcast()
	q.rcv.Broadcast()
}
