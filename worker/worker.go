package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/stalk/oerror"
)

// TickDuration is the length of a tick when a Loop is driven by Run.
const TickDuration = time.Second / 20

// Task is a function run by a Loop at a fixed period. It receives the value the Loop was ticked
// with.
type Task[T any] struct {
	name   string
	next   uint64
	period uint64
	f      func(v T)

	cancelled bool
}

// Cancel stops the task from running again. It is safe to call from within the task itself.
func (t *Task[T]) Cancel() {
	t.cancelled = true
}

// Loop runs tasks on a single goroutine, one tick at a time. Every tick passes a value of type T
// to the tasks due in it, such as a transaction that is only valid for that tick. Tasks due in
// the same tick run in the order they were scheduled. A Loop must only be ticked from one
// goroutine at a time.
type Loop[T any] struct {
	log     *slog.Logger
	current uint64
	tasks   []*Task[T]
	stopped bool
}

// NewLoop returns a Loop at tick zero.
func NewLoop[T any](log *slog.Logger) *Loop[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Loop[T]{log: log}
}

// Every schedules f to first run delay ticks after the current tick, and then once every period
// ticks. A period below one is treated as one.
func (l *Loop[T]) Every(name string, delay, period int64, f func(v T)) *Task[T] {
	if delay < 0 {
		delay = 0
	}
	if period < 1 {
		period = 1
	}
	t := &Task[T]{name: name, next: l.current + uint64(delay), period: uint64(period), f: f}
	l.tasks = append(l.tasks, t)
	return t
}

// Current returns the number of the tick that runs next.
func (l *Loop[T]) Current() uint64 {
	return l.current
}

// Tick runs every task due in the current tick with v and advances the loop by one tick. A task
// that panics is reported and keeps its schedule.
func (l *Loop[T]) Tick(v T) {
	if l.stopped {
		return
	}
	tasks := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.cancelled {
			tasks = append(tasks, t)
		}
	}
	l.tasks = tasks

	// Tasks scheduled while running this tick start from the next one.
	due := len(l.tasks)
	for _, t := range l.tasks[:due] {
		if t.cancelled || t.next > l.current {
			continue
		}
		t.next = l.current + t.period
		l.run(t, v)
		if l.stopped {
			return
		}
	}
	l.current++
}

// Stop cancels every task. Ticking a stopped loop does nothing.
func (l *Loop[T]) Stop() {
	for _, t := range l.tasks {
		t.Cancel()
	}
	l.tasks = nil
	l.stopped = true
}

// Stopped returns true if Stop was called.
func (l *Loop[T]) Stopped() bool {
	return l.stopped
}

// Run calls tick every d until the context is cancelled or the loop is stopped. tick is expected
// to call Tick with the value of that tick once it has one.
func (l *Loop[T]) Run(ctx context.Context, d time.Duration, tick func()) {
	if d <= 0 {
		d = TickDuration
	}
	t := time.NewTicker(d)
	defer t.Stop()

	for !l.stopped {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tick()
		}
	}
}

func (l *Loop[T]) run(t *Task[T], v T) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(oerror.New("task %s crashed: %v", t.name, err))
			hub.Flush(time.Second * 5)
			l.log.Error("task crashed", "task", t.name, "tick", l.current, "err", err)
		}
	}()
	t.f(v)
}
