package twin

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// Errors returned by package structs.
var (
	ErrCanceled = errors.New("twin: canceled")
	ErrClosed   = errors.New("twin: closed")
)

// Cond is a condition variable which waiting could be canceled with a
// context.
//
// Waiters are awoken in the order they called Wait().
type Cond struct {
	L    sync.Locker
	list list
}

// Wait unlocks c.L and suspends execution of the calling goroutine.
//
// Unlike sync.Cond Wait() can return before awoken by Signal() if and only
// if given context is done. In that case returned err matches both
// ErrCanceled and ctx.Err() with errors.Is().
//
// After later resume of execution, Wait() locks c.L before returning.
func (c *Cond) Wait(ctx context.Context) error {
	// Enqueue while c.L is still held so that a Signal() made right after
	// c.L is released is not lost.
	w := c.list.add()
	c.L.Unlock()
	err := c.list.wait(ctx, w)
	c.L.Lock()
	return err
}

// Signal wakes one goroutine waiting on c, if there is any.
func (c *Cond) Signal() {
	c.list.notify()
}

// Broadcast wakes all goroutines waiting on c.
func (c *Cond) Broadcast() {
	c.list.notifyAll()
}
