package world

import (
	"cmp"
	"iter"
	"log/slog"
	"maps"
	"slices"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sasha-s/go-deadlock"
)

// World is a chunk partitioned block store. Positions that were never written hold air, and
// chunks that are not loaded read as air and ignore writes.
type World struct {
	dimRange cube.Range

	chunks map[protocol.ChunkPos]map[cube.Pos]world.Block

	logger *slog.Logger

	deadlock.RWMutex
}

// New returns an empty World using the height range of the overworld.
func New(logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		chunks:   make(map[protocol.ChunkPos]map[cube.Pos]world.Block),
		dimRange: world.Overworld.Range(),
		logger:   logger,
	}
}

// ChunkPos returns the position of the chunk that holds the block position passed.
func ChunkPos(pos cube.Pos) protocol.ChunkPos {
	return protocol.ChunkPos{int32(pos[0] >> 4), int32(pos[2] >> 4)}
}

// LoadChunk marks the chunk passed as loaded. Loading an already loaded chunk keeps its blocks.
func (w *World) LoadChunk(chunkPos protocol.ChunkPos) {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.chunks[chunkPos]; !ok {
		w.chunks[chunkPos] = make(map[cube.Pos]world.Block)
	}
}

// UnloadChunk drops the chunk passed and every block in it. It returns false if the chunk was
// not loaded.
func (w *World) UnloadChunk(chunkPos protocol.ChunkPos) bool {
	w.Lock()
	defer w.Unlock()

	if _, ok := w.chunks[chunkPos]; !ok {
		return false
	}
	delete(w.chunks, chunkPos)
	return true
}

// Loaded returns true if the chunk passed is loaded.
func (w *World) Loaded(chunkPos protocol.ChunkPos) bool {
	w.RLock()
	_, ok := w.chunks[chunkPos]
	w.RUnlock()
	return ok
}

// Chunks returns the positions of all loaded chunks, ordered by X and then Z.
func (w *World) Chunks() []protocol.ChunkPos {
	w.RLock()
	positions := slices.Collect(maps.Keys(w.chunks))
	w.RUnlock()

	slices.SortFunc(positions, compareChunkPos)
	return positions
}

// Block returns the block at the position passed.
func (w *World) Block(pos cube.Pos) world.Block {
	if pos.OutOfBounds(w.dimRange) {
		return block.Air{}
	}

	w.RLock()
	defer w.RUnlock()

	c, ok := w.chunks[ChunkPos(pos)]
	if !ok {
		return block.Air{}
	}
	if b, ok := c[pos]; ok {
		return b
	}
	return block.Air{}
}

// SetBlock sets the block at the position passed. Setting air clears the position. The options
// are accepted so that World satisfies the same contract as a dragonfly transaction; there are no
// neighbour updates to suppress.
func (w *World) SetBlock(pos cube.Pos, b world.Block, _ *world.SetOpts) {
	if pos.OutOfBounds(w.dimRange) {
		return
	}
	chunkPos := ChunkPos(pos)

	w.Lock()
	defer w.Unlock()

	c, ok := w.chunks[chunkPos]
	if !ok {
		w.logger.Debug("dropped block write in unloaded chunk", "pos", pos, "chunkPos", chunkPos)
		return
	}
	if _, air := b.(block.Air); air || b == nil {
		delete(c, pos)
		return
	}
	c[pos] = b
}

// Blocks returns an iterator over the non-air blocks of the chunk passed, ordered by Y, X and
// then Z so that repeated scans visit blocks in the same order.
func (w *World) Blocks(chunkPos protocol.ChunkPos) iter.Seq2[cube.Pos, world.Block] {
	return func(yield func(cube.Pos, world.Block) bool) {
		w.RLock()
		c, ok := w.chunks[chunkPos]
		if !ok {
			w.RUnlock()
			return
		}
		positions := slices.Collect(maps.Keys(c))
		blocks := make([]world.Block, 0, len(positions))
		slices.SortFunc(positions, comparePos)
		for _, pos := range positions {
			blocks = append(blocks, c[pos])
		}
		w.RUnlock()

		for i, pos := range positions {
			if !yield(pos, blocks[i]) {
				return
			}
		}
	}
}

// Range returns an iterator over the non-air blocks of every loaded chunk.
func (w *World) Range() iter.Seq2[cube.Pos, world.Block] {
	return func(yield func(cube.Pos, world.Block) bool) {
		for _, chunkPos := range w.Chunks() {
			for pos, b := range w.Blocks(chunkPos) {
				if !yield(pos, b) {
					return
				}
			}
		}
	}
}

// CleanChunks unloads every chunk outside the radius around the chunk position passed, and
// returns the positions of the chunks that were unloaded.
func (w *World) CleanChunks(radius int32, pos protocol.ChunkPos) []protocol.ChunkPos {
	w.Lock()
	defer w.Unlock()

	var removed []protocol.ChunkPos
	for chunkPos := range w.chunks {
		if chunkInRange(radius, chunkPos, pos) {
			continue
		}
		delete(w.chunks, chunkPos)
		removed = append(removed, chunkPos)
	}
	slices.SortFunc(removed, compareChunkPos)
	if len(removed) > 0 {
		w.logger.Debug("cleaned chunks", "count", len(removed), "radius", radius, "pos", pos)
	}
	return removed
}

// chunkInRange returns true if the chunk position is within the given radius of the chunk position.
func chunkInRange(radius int32, chunkPos, pos protocol.ChunkPos) bool {
	diffX, diffZ := pos[0]-chunkPos[0], pos[1]-chunkPos[1]
	dist := math32.Sqrt(float32(diffX*diffX) + float32(diffZ*diffZ))

	return int32(dist) <= radius
}

func comparePos(a, b cube.Pos) int {
	return cmp.Or(cmp.Compare(a[1], b[1]), cmp.Compare(a[0], b[0]), cmp.Compare(a[2], b[2]))
}

func compareChunkPos(a, b protocol.ChunkPos) int {
	return cmp.Or(cmp.Compare(a[0], b[0]), cmp.Compare(a[1], b[1]))
}
