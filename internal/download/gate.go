package download

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the number of simultaneous fetches when none is configured
const DefaultConcurrency = 10

// Gate bounds the number of concurrently running fetches. Waiters are served
// in arrival order.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int64
	active   atomic.Int64
	peak     atomic.Int64
}

// Permit is one acquired slot of a Gate
type Permit struct {
	gate *Gate
	once sync.Once
}

// NewGate creates a gate with the given capacity. Values below 1 become 1.
func NewGate(capacity int) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
	}
}

// Acquire blocks until a slot is free. It only fails if ctx is done first.
func (g *Gate) Acquire(ctx context.Context) (*Permit, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	active := g.active.Add(1)
	for {
		peak := g.peak.Load()
		if active <= peak || g.peak.CompareAndSwap(peak, active) {
			break
		}
	}

	return &Permit{gate: g}, nil
}

// Release returns the slot. Calls after the first are no-ops.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.gate.active.Add(-1)
		p.gate.sem.Release(1)
	})
}

// Capacity returns the number of slots
func (g *Gate) Capacity() int {
	return int(g.capacity)
}

// Active returns the number of slots currently held
func (g *Gate) Active() int {
	return int(g.active.Load())
}

// Peak returns the highest number of slots ever held at once
func (g *Gate) Peak() int {
	return int(g.peak.Load())
}
