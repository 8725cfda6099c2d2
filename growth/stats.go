package growth

import "go.uber.org/atomic"

// Stats are counters describing the work a Scheduler has done. They may be read from any
// goroutine.
type Stats struct {
	tracked atomic.Int64
	queued  atomic.Int64

	passes   atomic.Uint64
	enqueued atomic.Uint64
	popped   atomic.Uint64
	stale    atomic.Uint64
	grown    atomic.Uint64
	capped   atomic.Uint64
	blocked  atomic.Uint64
}

// StatsSnapshot is a point in time copy of Stats.
type StatsSnapshot struct {
	// Tracked and Queued are the sizes of the tracked set and growth queue.
	Tracked, Queued int64
	// Passes is the number of sampler passes.
	Passes uint64
	// Enqueued is the number of positions the sampler and Grew notifications queued.
	Enqueued uint64
	// Popped is the number of queue entries the processor handled, stale ones included.
	Popped uint64
	Stale  uint64
	Grown  uint64
	Capped uint64
	// Blocked is the number of attempts where the block above the stack was not air.
	Blocked uint64
}

// Snapshot returns the current value of every counter.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Tracked:  s.tracked.Load(),
		Queued:   s.queued.Load(),
		Passes:   s.passes.Load(),
		Enqueued: s.enqueued.Load(),
		Popped:   s.popped.Load(),
		Stale:    s.stale.Load(),
		Grown:    s.grown.Load(),
		Capped:   s.capped.Load(),
		Blocked:  s.blocked.Load(),
	}
}

func (s *Stats) outcome(o Outcome) {
	switch o {
	case Grown:
		s.grown.Inc()
	case Capped:
		s.capped.Inc()
	case Blocked:
		s.blocked.Inc()
	}
}
