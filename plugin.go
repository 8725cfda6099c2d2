package stalk

import (
	"context"
	"iter"
	"log/slog"
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oomph-ac/stalk/growth"
	"github.com/oomph-ac/stalk/oerror"
	"github.com/oomph-ac/stalk/settings"
	"github.com/oomph-ac/stalk/worker"
	"go.uber.org/atomic"
)

// Plugin grows stackable plants up to a maximum height at a bounded rate. It is driven by the
// tick of its host, which passes the blocks of the world to every Tick. Every method except
// Submit and Stats must be called from the goroutine that ticks the plugin.
type Plugin struct {
	conf    settings.Settings
	log     *slog.Logger
	species []growth.Species
	rand    growth.Rand

	sched *growth.Scheduler
	loop  *worker.Loop[growth.BlockSource]
	stats atomic.Pointer[growth.Stats]

	pendingMu sync.Mutex
	pending   []growth.Notification
}

// Option changes how a Plugin is created.
type Option func(p *Plugin)

// WithRand makes the plugin sample with the random source passed instead of one seeded from the
// settings.
func WithRand(r growth.Rand) Option {
	return func(p *Plugin) {
		p.rand = r
	}
}

// New returns a disabled Plugin. Settings outside their sane range are logged and used as they
// are. New returns an error if none of the configured species is known.
func New(conf settings.Settings, log *slog.Logger, opts ...Option) (*Plugin, error) {
	if log == nil {
		log = slog.Default()
	}
	for _, problem := range conf.Problems() {
		log.Warn("questionable setting", "problem", problem)
	}

	p := &Plugin{conf: conf, log: log}
	for _, name := range conf.Species {
		if sp, ok := growth.SpeciesByName(name); ok {
			p.species = append(p.species, sp)
		}
	}
	if len(p.species) == 0 {
		return nil, oerror.New("no known species in %v", conf.Species)
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rand == nil {
		p.rand = growth.NewRand(uint64(conf.Seed), conf.World)
	}
	return p, nil
}

// Enabled returns true if the plugin is enabled.
func (p *Plugin) Enabled() bool {
	return p.sched != nil
}

// Enable starts tracking and growing plants. If pre-scanning is enabled and existing is not nil,
// every plant it yields is tracked first. The sampler first runs on the next tick and the
// processor on the tick after. Enabling an enabled plugin does nothing.
func (p *Plugin) Enable(existing iter.Seq2[cube.Pos, world.Block]) {
	if p.Enabled() {
		return
	}
	p.sched = growth.NewScheduler(growth.Config{
		MaxHeight:     p.conf.MaxHeight,
		GrowthChance:  p.conf.GrowthChance,
		BlocksPerTick: p.conf.BlocksPerTick,
		Species:       p.species,
	}, p.rand, p.log)
	p.stats.Store(p.sched.Stats())

	if p.conf.PreScan && existing != nil {
		n := p.sched.Seed(existing)
		p.log.Info("tracked existing plants", "count", n)
	}

	p.loop = worker.NewLoop[growth.BlockSource](p.log)
	p.loop.Every("sample", 0, p.conf.GrowthIntervalTicks, func(growth.BlockSource) { p.sched.Sample() })
	p.loop.Every("process", 1, 1, func(src growth.BlockSource) { p.sched.Process(src) })

	p.log.Info("stalk enabled", "maxHeight", p.conf.MaxHeight, "growthIntervalTicks", p.conf.GrowthIntervalTicks, "growthChance", p.conf.GrowthChance)
}

// Disable stops growing plants and forgets every tracked and queued position. Disabling a
// disabled plugin does nothing.
func (p *Plugin) Disable() {
	if !p.Enabled() {
		return
	}
	p.loop.Stop()
	dropped := p.sched.Reset()
	p.sched, p.loop = nil, nil
	p.stats.Store(nil)

	p.pendingMu.Lock()
	p.pending = nil
	p.pendingMu.Unlock()

	p.log.Info("stalk disabled", "droppedQueued", dropped)
}

// Notify applies a notification right away. It returns true if the notification was a Grew for
// a tracked plant, meaning the host should cancel its own growth of that plant. A disabled plugin
// ignores notifications.
func (p *Plugin) Notify(n growth.Notification) bool {
	if !p.Enabled() {
		return false
	}
	return p.sched.Handle(n)
}

// Submit queues a notification to be applied at the start of the next tick. Unlike Notify, it may
// be called from any goroutine.
func (p *Plugin) Submit(n growth.Notification) {
	p.pendingMu.Lock()
	p.pending = append(p.pending, n)
	p.pendingMu.Unlock()
}

// Tick applies submitted notifications and then runs the sampler and processor if they are due.
// Plants are grown in src, which is not kept after Tick returns, so a dragonfly *world.Tx may be
// passed from inside its transaction.
func (p *Plugin) Tick(src growth.BlockSource) {
	if !p.Enabled() {
		return
	}
	p.drain()
	p.loop.Tick(src)
}

// Run ticks the plugin with src every worker.TickDuration, for hosts whose block source stays
// valid between ticks. Run returns when the context is cancelled, or when the plugin is disabled
// on the goroutine running it. Other goroutines must stop Run by cancelling the context, not by
// calling Disable.
func (p *Plugin) Run(ctx context.Context, src growth.BlockSource) {
	if !p.Enabled() {
		return
	}
	p.loop.Run(ctx, worker.TickDuration, func() { p.Tick(src) })
}

// RunWorld ticks the plugin every worker.TickDuration inside a transaction of the dragonfly world
// passed. It stops like Run does. w must not be closed before RunWorld returns.
func (p *Plugin) RunWorld(ctx context.Context, w *world.World) {
	if !p.Enabled() {
		return
	}
	p.loop.Run(ctx, worker.TickDuration, func() {
		<-w.Exec(func(tx *world.Tx) {
			p.Tick(tx)
		})
	})
}

// Stats returns the counters of the scheduler. A disabled plugin returns zero stats.
func (p *Plugin) Stats() growth.StatsSnapshot {
	stats := p.stats.Load()
	if stats == nil {
		return growth.StatsSnapshot{}
	}
	return stats.Snapshot()
}

// Scheduler returns the scheduler of an enabled plugin, or nil.
func (p *Plugin) Scheduler() *growth.Scheduler {
	return p.sched
}

func (p *Plugin) drain() {
	if p.sched == nil {
		return
	}
	p.pendingMu.Lock()
	pending := p.pending
	p.pending = nil
	p.pendingMu.Unlock()

	for _, n := range pending {
		p.sched.Handle(n)
	}
}
