package deform

import (
	"sync/atomic"

	"github.com/Faultbox/meshdeform/internal/engine/jobs"
)

// Counter is the owner side of a per-dispatch shared integer.
//
// A Counter schedules exactly one job. The job gets an increment-only
// ConcurrentCounter, and the owner gets a Pending for that same job. The cell
// can only be read or released through the Joined value returned by
// Pending.Join, after every batch of the job has stopped.
type Counter struct {
	cell      *cell
	scheduled bool
}

type cell struct {
	n        atomic.Int64
	released atomic.Bool
}

// NewCounter allocates a zeroed counter.
func NewCounter() *Counter {
	return &Counter{cell: new(cell)}
}

// Schedule builds the job with newJob, handing it the counter's writer, and
// dispatches it on p. A counter can be scheduled only once.
func (c *Counter) Schedule(p *jobs.Pool, n, batch int, newJob func(ConcurrentCounter) jobs.ParallelJob) *Pending {
	if c.scheduled {
		panic("deform: counter already scheduled")
	}
	c.scheduled = true

	job := newJob(ConcurrentCounter{cell: c.cell})
	return &Pending{cell: c.cell, handle: p.Schedule(n, batch, job)}
}

// Pending is a scheduled job that writes to a Counter.
type Pending struct {
	cell   *cell
	handle *jobs.Handle
}

// Join waits for the job and returns the read/release side of the counter.
// Every batch has stopped by the time Join returns, even when the job failed,
// so the returned Joined is always safe to use.
func (p *Pending) Join() (Joined, error) {
	err := p.handle.Complete()
	return Joined{cell: p.cell}, err
}

// ConcurrentCounter is the worker side of a Counter.
type ConcurrentCounter struct {
	cell *cell
}

// Increment adds one. It panics once the counter has been released.
func (cc ConcurrentCounter) Increment() {
	if cc.cell.released.Load() {
		panic("deform: Increment on released counter")
	}
	cc.cell.n.Add(1)
}

// Joined proves the writers of a Counter have finished.
type Joined struct {
	cell *cell
}

// Count returns the final value.
func (j Joined) Count() int {
	if j.cell == nil || j.cell.released.Load() {
		panic("deform: Count on released counter")
	}
	return int(j.cell.n.Load())
}

// Release frees the cell for the owner and every writer. Releasing twice is
// a no-op.
func (j Joined) Release() {
	if j.cell != nil {
		j.cell.released.Store(true)
	}
}
