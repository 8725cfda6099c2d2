package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/stalk"
	"github.com/oomph-ac/stalk/growth"
	"github.com/oomph-ac/stalk/settings"
	"github.com/oomph-ac/stalk/world"
)

var (
	settingsPath = flag.String("settings", "stalk.toml", "path to the settings file, created with defaults if missing")
	radius       = flag.Int("radius", 4, "radius in chunks of the area planted with sugar cane")
	duration     = flag.Duration("duration", time.Minute, "how long to run for")
)

// The following program plants sugar cane in an in-memory world and lets stalk grow it.
func main() {
	flag.Parse()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	conf, err := settings.LoadOrCreate(*settingsPath)
	if err != nil {
		log.Error("unable to load settings", "err", err)
		os.Exit(1)
	}
	if conf.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: conf.SentryDSN}); err != nil {
			log.Error("unable to initialise sentry", "err", err)
		}
		defer sentry.Flush(time.Second * 2)
	}

	w := world.New(log)
	planted := plantGrid(w, *radius)
	log.Info("planted sugar cane", "count", planted, "chunks", len(w.Chunks()))

	p, err := stalk.New(conf, log)
	if err != nil {
		log.Error("unable to create plugin", "err", err)
		os.Exit(1)
	}
	p.Enable(w.Range())
	defer p.Disable()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	go reportStats(ctx, log, p, w)
	p.Run(ctx, w)
	log.Info("finished", "stats", p.Stats())
}

// plantGrid loads every chunk within the radius passed around the origin and plants a single sugar
// cane block on grass every three blocks.
func plantGrid(w *world.World, radius int) int {
	var n int
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			base := cube.Pos{cx << 4, 64, cz << 4}
			w.LoadChunk(world.ChunkPos(base))
			for x := 0; x < 16; x += 3 {
				for z := 0; z < 16; z += 3 {
					pos := base.Add(cube.Pos{x, 0, z})
					w.SetBlock(pos.Side(cube.FaceDown), block.Grass{}, nil)
					w.SetBlock(pos, block.SugarCane{}, nil)
					n++
				}
			}
		}
	}
	return n
}

// reportStats logs the plugin stats every few seconds. Halfway through, chunks far from the origin
// are unloaded and the plugin is told to stop tracking them.
func reportStats(ctx context.Context, log *slog.Logger, p *stalk.Plugin, w *world.World) {
	t := time.NewTicker(time.Second * 5)
	defer t.Stop()

	unload := time.After(*duration / 2)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := p.Stats()
			log.Info("growth stats", "tracked", s.Tracked, "queued", s.Queued, "grown", s.Grown, "capped", s.Capped, "stale", s.Stale)
		case <-unload:
			for _, chunkPos := range w.CleanChunks(int32(*radius/2), world.ChunkPos(cube.Pos{})) {
				p.Submit(growth.ContainerInvalidated{Chunk: chunkPos})
			}
		}
	}
}
