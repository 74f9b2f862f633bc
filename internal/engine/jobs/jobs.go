// Package jobs runs index-parallel work on a bounded pool of goroutines.
//
// A job is scheduled over an index range [0, n) split into contiguous
// batches; the returned Handle is the only way to wait for it. Nothing about
// the job's results may be observed until Handle.Complete returns.
package jobs

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// ParallelJob is executed once per index. Execute must only touch state that
// belongs to index i, plus state that is safe for concurrent use.
type ParallelJob interface {
	Execute(i int)
}

// JobFunc adapts a function to ParallelJob.
type JobFunc func(i int)

// Execute calls f(i).
func (f JobFunc) Execute(i int) { f(i) }

// PanicError is returned by Handle.Complete when a batch panicked.
type PanicError struct {
	Start, End int
	Value      any
	Stack      []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("job panicked in batch [%d, %d): %v", e.Start, e.End, e.Value)
}

// Pool bounds how many batches run at once.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker limit.
// workers <= 0 uses GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the worker limit.
func (p *Pool) Workers() int {
	return p.workers
}

// Schedule starts job over [0, n) in batches of batchSize indices.
// batchSize <= 0 splits the range evenly across the workers.
// The call returns immediately; use the Handle to join.
func (p *Pool) Schedule(n, batchSize int, job ParallelJob) *Handle {
	h := &Handle{done: make(chan struct{})}
	if n <= 0 {
		close(h.done)
		return h
	}

	batchSize = p.batchSize(n, batchSize)
	h.batches = (n + batchSize - 1) / batchSize

	var g errgroup.Group
	g.SetLimit(p.workers)

	go func() {
		for start := 0; start < n; start += batchSize {
			end := min(start+batchSize, n)
			g.Go(func() error {
				return runBatch(job, start, end)
			})
		}
		h.err = g.Wait()
		close(h.done)
	}()

	return h
}

// Run schedules job and waits for it.
func (p *Pool) Run(n, batchSize int, job ParallelJob) error {
	return p.Schedule(n, batchSize, job).Complete()
}

// ParallelFor runs fn for every index in [0, n) and waits.
func (p *Pool) ParallelFor(n, batchSize int, fn func(i int)) error {
	return p.Run(n, batchSize, JobFunc(fn))
}

func (p *Pool) batchSize(n, requested int) int {
	if requested > 0 {
		return requested
	}
	return max(1, (n+p.workers-1)/p.workers)
}

func runBatch(job ParallelJob, start, end int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Start: start, End: end, Value: r, Stack: debug.Stack()}
		}
	}()
	for i := start; i < end; i++ {
		job.Execute(i)
	}
	return nil
}

// Handle tracks a scheduled job.
type Handle struct {
	done    chan struct{}
	err     error
	batches int
}

// Complete blocks until every batch has finished. It is safe to call more
// than once; every call returns the same result. A job cannot be cancelled.
func (h *Handle) Complete() error {
	<-h.done
	return h.err
}

// IsCompleted reports whether the job has finished without blocking.
func (h *Handle) IsCompleted() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Batches returns the number of batches the job was split into.
func (h *Handle) Batches() int {
	return h.batches
}
