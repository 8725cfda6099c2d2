package growth

import (
	"iter"
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oomph-ac/stalk/assert"
)

// DefaultBlocksPerTick is the number of queue entries Process handles per call unless configured
// otherwise.
const DefaultBlocksPerTick = 50

// Config holds the values a Scheduler grows plants with. Values outside their sane ranges are
// used as they are: a MaxHeight of zero or less stops all growth, and a GrowthChance outside
// [0, 1] behaves as never or always.
type Config struct {
	// MaxHeight is the height a stack stops growing at.
	MaxHeight int
	// GrowthChance is the probability that a tracked position is queued in a sampler pass.
	GrowthChance float64
	// BlocksPerTick is the maximum number of queue entries handled by a single Process call.
	BlocksPerTick int
	// Species lists the plants that are tracked and grown.
	Species []Species
}

// Scheduler tracks growable positions and grows them at a bounded rate. Sample decides which
// positions grow and Process grows them. A Scheduler is not safe for concurrent use: Sample,
// Process and Handle are expected to run on the single goroutine that ticks the host world.
type Scheduler struct {
	conf Config
	rand Rand
	log  *slog.Logger

	tracked *Set
	queue   *Queue[Position]

	stats Stats
}

// NewScheduler returns a Scheduler that draws samples from r.
func NewScheduler(conf Config, r Rand, log *slog.Logger) *Scheduler {
	assert.IsTrue(r != nil, "growth scheduler requires a random source")
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		conf:    conf,
		rand:    r,
		log:     log,
		tracked: NewSet(),
		queue:   NewQueue[Position](conf.BlocksPerTick),
	}
}

// Tracked returns the set of tracked positions.
func (s *Scheduler) Tracked() *Set {
	return s.tracked
}

// Queued returns the number of positions waiting to be processed.
func (s *Scheduler) Queued() int {
	return s.queue.Len()
}

// Stats returns the counters of the scheduler.
func (s *Scheduler) Stats() *Stats {
	return &s.stats
}

// Sample draws one sample for every tracked position and queues the positions whose sample is
// below the growth chance. It iterates a snapshot of the tracked set, so positions added while
// the pass runs are first considered in the next pass. Sample returns the number of positions
// queued.
func (s *Scheduler) Sample() int {
	snapshot := s.tracked.Snapshot()

	var n int
	for _, pos := range snapshot {
		if s.rand.Float64() < s.conf.GrowthChance {
			s.queue.Push(pos)
			n++
		}
	}
	s.stats.passes.Inc()
	s.stats.enqueued.Add(uint64(n))
	s.sync()

	s.log.Debug("sampled growth candidates", "tracked", len(snapshot), "queued", n, "backlog", s.queue.Len())
	return n
}

// Process pops at most BlocksPerTick positions from the queue and grows each one that still
// holds a plant of a tracked species in src. Entries whose block changed since they were queued
// are dropped, but still count towards the limit. Process returns the number of entries popped.
func (s *Scheduler) Process(src BlockSource) int {
	assert.IsTrue(src != nil, "growth scheduler requires a block source")

	var n int
	for n < s.conf.BlocksPerTick {
		pos, ok := s.queue.Pop()
		if !ok {
			break
		}
		n++

		sp, ok := s.species(src.Block(pos.Pos))
		if !ok {
			s.stats.stale.Inc()
			continue
		}
		top, outcome := Grow(src, pos.Pos, sp, s.conf.MaxHeight)
		if outcome == Grown {
			s.tracked.Add(NewPosition(top))
		}
		s.stats.outcome(outcome)
	}
	if n > 0 {
		s.stats.popped.Add(uint64(n))
		s.sync()
	}
	return n
}

// Handle applies a notification to the tracked set. It returns true only for a Grew notification
// of a tracked species, in which case the position is queued right away and the host should
// cancel its own growth.
func (s *Scheduler) Handle(n Notification) (cancel bool) {
	switch n := n.(type) {
	case Appeared:
		if _, ok := s.species(n.Block); ok {
			s.tracked.Add(NewPosition(n.Pos))
		}
	case Removed:
		s.tracked.Remove(n.Pos)
	case ContainerInvalidated:
		if removed := s.tracked.RemoveChunk(n.Chunk); removed > 0 {
			s.log.Debug("stopped tracking unloaded chunk", "chunkPos", n.Chunk, "positions", removed)
		}
	case Grew:
		if _, ok := s.species(n.Block); ok {
			pos := NewPosition(n.Pos)
			s.tracked.Add(pos)
			s.queue.Push(pos)
			s.stats.enqueued.Inc()
			cancel = true
		}
	}
	s.sync()
	return cancel
}

// Seed tracks every block of a tracked species yielded by blocks, and returns how many were added.
func (s *Scheduler) Seed(blocks iter.Seq2[cube.Pos, world.Block]) int {
	before := s.tracked.Len()
	for pos, b := range blocks {
		if _, ok := s.species(b); ok {
			s.tracked.Add(NewPosition(pos))
		}
	}
	s.sync()
	return s.tracked.Len() - before
}

// Reset forgets every tracked and queued position. It returns the number of queue entries that
// were dropped without being processed.
func (s *Scheduler) Reset() int {
	s.tracked.Clear()
	dropped := s.queue.Clear()
	s.sync()
	return dropped
}

// species returns the configured species the block passed belongs to.
func (s *Scheduler) species(b world.Block) (Species, bool) {
	for _, sp := range s.conf.Species {
		if sp.Match(b) {
			return sp, true
		}
	}
	return Species{}, false
}

// sync publishes the sizes of the tracked set and queue to the stats.
func (s *Scheduler) sync() {
	s.stats.tracked.Store(int64(s.tracked.Len()))
	s.stats.queued.Store(int64(s.queue.Len()))
}
