// Package mailbox hands results of background work to a single consumer,
// the frame loop, which applies them between frames.
package mailbox

import (
	"context"
	"sync"
	"sync/atomic"
)

// Box runs at most one background job at a time and queues its result.
//
// Thread-Safety:
//   - Go, Drain, Close: the consumer goroutine (frame loop)
//   - Busy: any goroutine
//   - run: its own goroutine, never concurrently with another run
type Box[T any] struct {
	results chan T
	busy    atomic.Bool
	closed  atomic.Bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// New returns a box that buffers up to size results before a job blocks.
func New[T any](size int) *Box[T] {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Box[T]{
		results: make(chan T, size),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Go starts run on its own goroutine unless a job is already running or the
// box is closed, in which case the request is dropped and Go returns false.
// When run reports ok its result is queued for the next Drain.
func (b *Box[T]) Go(run func(ctx context.Context) (result T, ok bool)) bool {
	if b.closed.Load() || !b.busy.CompareAndSwap(false, true) {
		return false
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer b.busy.Store(false)

		v, ok := run(b.ctx)
		if !ok || b.ctx.Err() != nil {
			return
		}
		select {
		case b.results <- v:
		case <-b.ctx.Done():
		}
	}()
	return true
}

// Busy reports whether a job is running.
func (b *Box[T]) Busy() bool { return b.busy.Load() }

// Drain applies every queued result in FIFO order and returns how many ran.
func (b *Box[T]) Drain(apply func(T)) int {
	n := 0
	for {
		select {
		case v := <-b.results:
			apply(v)
			n++
		default:
			return n
		}
	}
}

// Close cancels the running job, waits for it and discards queued results.
// Safe to call more than once.
func (b *Box[T]) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.cancel()
	b.wg.Wait()
	for {
		select {
		case <-b.results:
		default:
			return
		}
	}
}
