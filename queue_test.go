package twin

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var immediately = func() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}()

func TestQueue(t *testing.T) {
	for _, test := range []struct {
		name     string
		size     int
		rcvn     int
		send     []int
		priority []byte
		recv     [][]int
	}{
		{
			name:     "fifo",
			size:     1,
			rcvn:     1,
			send:     []int{1, 2, 3},
			priority: []byte{0, 0, 0},
			recv: [][]int{
				{1}, {2}, {3},
			},
		},
		{
			name:     "equivalent",
			size:     3,
			rcvn:     3,
			send:     []int{1, 2, 3},
			priority: []byte{0, 0, 0},
			recv: [][]int{
				{1, 2, 3},
			},
		},
		{
			name:     "single slot",
			size:     1,
			rcvn:     1,
			send:     []int{1, 2, 3},
			priority: []byte{1, 2, 3},
			recv: [][]int{
				{1}, {2}, {3},
			},
		},
		{
			name:     "two slots",
			size:     2,
			rcvn:     1,
			send:     []int{1, 2, 3},
			priority: []byte{1, 2, 3},
			recv: [][]int{
				{2}, {3}, {1},
			},
		},
		{
			name:     "three slots",
			size:     3,
			rcvn:     1,
			send:     []int{1, 2, 3},
			priority: []byte{1, 2, 3},
			recv: [][]int{
				{3}, {2}, {1},
			},
		},
		{
			name:     "batch",
			size:     3,
			rcvn:     4,
			send:     []int{1, 2, 3},
			priority: []byte{1, 2, 3},
			recv: [][]int{
				{3, 2, 1, -1},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			q := NewMaxQueue[int, byte](test.size)

			var (
				i   int
				act [][]int
			)
			ts := make([]Twin[int, byte], test.rcvn)
			for range test.recv {
				for ; i < len(test.send); i++ {
					err := q.Send(immediately, Make(test.send[i], test.priority[i]))
					if err != nil {
						// No space in queue so let the receiver receive
						// twins.
						break
					}
				}
				n, err := q.RecvTo(context.Background(), ts)
				if err != nil {
					t.Fatal(err)
				}
				xs := make([]int, len(ts))
				for j := 0; j < n; j++ {
					xs[j] = ts[j].First
				}
				for j := len(xs) - 1; j >= n; j-- {
					xs[j] = -1
				}
				act = append(act, xs)
			}
			for i, exp := range test.recv {
				act := act[i]
				if !reflect.DeepEqual(act, exp) {
					t.Errorf("unexpected #%d recv: %v; want %v", i, act, exp)
				}
			}
		})
	}
}

func TestQueueCapacity(t *testing.T) {
	q := NewMaxQueue[string, int](3)
	for i, x := range []string{"a", "b", "c"} {
		require.NoError(t, q.Send(immediately, Make(x, i)))
	}
	err := q.Send(immediately, Make("d", 9))
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, q.Len())

	x, err := q.Recv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Make("c", 2), x)
	assert.NoError(t, q.Send(immediately, Make("d", 9)))
	assert.Equal(t, 3, q.Len())
}

func TestQueueEquivalentInSendOrder(t *testing.T) {
	q := NewMinQueue[string, int](4)
	ctx := context.Background()
	for _, x := range []Twin[string, int]{
		Make("a", 1),
		Make("b", 0),
		Make("c", 1),
		Make("d", 0),
	} {
		require.NoError(t, q.Send(ctx, x))
	}
	var act []string
	for q.Len() > 0 {
		x, err := q.Recv(ctx)
		require.NoError(t, err)
		act = append(act, x.First)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, act)
}

func TestQueueBlockingSend(t *testing.T) {
	q := NewMinQueue[string, int](1)
	ctx := context.Background()
	require.NoError(t, q.Send(ctx, Make("x", 2)))

	sent := make(chan error, 1)
	go func() {
		sent <- q.Send(ctx, Make("y", 1))
	}()
	select {
	case err := <-sent:
		t.Fatalf("Send() to full queue returned: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	x, err := q.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", x.First)

	select {
	case err := <-sent:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("Send() is still blocked after 1s")
	}
	x, err = q.Recv(ctx)
	require.NoError(t, err)
	assert.Equal(t, Make("y", 1), x)
}

func TestQueueClose(t *testing.T) {
	q := NewMinQueue[string, int](2)
	ctx := context.Background()
	require.NoError(t, q.Send(ctx, Make("a", 1)))

	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Send(ctx, Make("b", 0)), ErrClosed)

	x, err := q.Recv(ctx)
	require.NoError(t, err, "pending twins must be received after Close()")
	assert.Equal(t, "a", x.First)

	_, err = q.Recv(ctx)
	assert.ErrorIs(t, err, ErrClosed)

	n, err := q.RecvTo(ctx, make([]Twin[string, int], 2))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueueCloseWakesReceivers(t *testing.T) {
	q := NewMaxQueue[int, int](1)

	const n = 4
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := q.Recv(context.Background())
			errs <- err
		}()
	}
	time.Sleep(10 * time.Millisecond)
	q.Close()

	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrClosed)
		case <-time.After(time.Second):
			t.Fatalf("receiver is still blocked after 1s")
		}
	}
}

func TestQueueRecvCanceled(t *testing.T) {
	q := NewMaxQueue[int, int](1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Recv(ctx)
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	n, err := q.RecvTo(ctx, make([]Twin[int, int], 1))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, ErrCanceled)

	n, err = q.RecvTo(ctx, nil)
	assert.Zero(t, n)
	assert.NoError(t, err)
}

func TestQueueMisconfigured(t *testing.T) {
	assert.PanicsWithValue(t, "twin: queue size must be >0", func() {
		NewMinQueue[int, int](0).Len()
	})
	assert.PanicsWithValue(t, "twin: nil queue comparator", func() {
		q := &Queue[int, int]{Size: 1}
		q.Len()
	})
}

func TestQueueLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	q := NewMinQueue[string, float64](2)
	q.Logger = zap.New(core)

	require.NoError(t, q.Send(context.Background(), Make("node-A", 3.5)))
	q.Close()

	entries := logs.FilterMessage("queue closed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["pending"])
}

func TestQueueConcurrent(t *testing.T) {
	const (
		producers = 4
		consumers = 3
		perSender = 250
	)
	q := NewMinQueue[int, int](8)
	ctx := context.Background()

	var (
		mu   sync.Mutex
		recv []int
		wg   sync.WaitGroup
	)
	for i := 0; i < consumers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]Twin[int, int], 3)
			for {
				n, err := q.RecvTo(ctx, buf)
				if err != nil {
					return
				}
				mu.Lock()
				for _, x := range buf[:n] {
					recv = append(recv, x.First)
				}
				mu.Unlock()
			}
		}()
	}

	var sent sync.WaitGroup
	for i := 0; i < producers; i++ {
		sent.Add(1)
		go func(i int) {
			defer sent.Done()
			for j := 0; j < perSender; j++ {
				x := i*perSender + j
				if err := q.Send(ctx, Make(x, x%7)); err != nil {
					t.Errorf("unexpected Send() error: %v", err)
					return
				}
			}
		}(i)
	}
	sent.Wait()
	q.Close()
	wg.Wait()

	exp := make([]int, producers*perSender)
	for i := range exp {
		exp[i] = i
	}
	less := func(a, b int) bool { return a < b }
	if diff := cmp.Diff(exp, recv, cmpopts.SortSlices(less)); diff != "" {
		t.Fatalf("unexpected received twins (-want +got):\n%s", diff)
	}
}
