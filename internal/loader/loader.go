// Package loader runs the "list all items" query on a dedicated background
// worker so the calling goroutine never waits on storage I/O.
package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/erazemk/inventory/internal/model"
)

// ErrClosed is delivered for loads requested after Close.
var ErrClosed = errors.New("loader closed")

// queueSize bounds the number of pending loads before Load starts to block.
const queueSize = 16

// QueryFunc performs the read on the worker.
type QueryFunc func(ctx context.Context) ([]model.Item, error)

// Result is the outcome of one load.
type Result struct {
	Items []model.Item
	Err   error
}

type job struct {
	ctx context.Context
	out chan<- Result
}

// Loader owns one worker goroutine. Loads run one at a time, in request order.
type Loader struct {
	query QueryFunc

	mu     sync.RWMutex
	closed bool
	jobs   chan job
	quit   chan struct{}
	done   chan struct{}
}

// New starts the worker.
func New(query QueryFunc) *Loader {
	l := &Loader{
		query: query,
		jobs:  make(chan job, queueSize),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Load dispatches one query to the worker. The returned channel delivers
// exactly one Result and is then closed. Cancelling ctx before the worker
// reaches the job yields ctx.Err() without running the query.
func (l *Loader) Load(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		deliver(out, Result{Err: ErrClosed})
		return out
	}

	select {
	case l.jobs <- job{ctx: ctx, out: out}:
	case <-ctx.Done():
		deliver(out, Result{Err: ctx.Err()})
	}
	return out
}

// Close stops the worker after the running load finishes. Queued loads
// receive ErrClosed. Close is safe to call more than once.
func (l *Loader) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.quit)
	}
	l.mu.Unlock()
	<-l.done
}

func (l *Loader) run() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			l.drain()
			return
		case j := <-l.jobs:
			l.handle(j)
		}
	}
}

func (l *Loader) handle(j job) {
	if err := j.ctx.Err(); err != nil {
		deliver(j.out, Result{Err: err})
		return
	}
	items, err := l.query(j.ctx)
	deliver(j.out, Result{Items: items, Err: err})
}

func (l *Loader) drain() {
	for {
		select {
		case j := <-l.jobs:
			deliver(j.out, Result{Err: ErrClosed})
		default:
			return
		}
	}
}

func deliver(out chan<- Result, r Result) {
	out <- r
	close(out)
}
