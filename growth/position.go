package growth

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Position is a block position together with the chunk that contains it. The chunk is derived
// from the coordinate, so two Positions are equal exactly when their coordinates are.
type Position struct {
	Pos   cube.Pos
	Chunk protocol.ChunkPos
}

// NewPosition returns the Position of the block position passed.
func NewPosition(pos cube.Pos) Position {
	return Position{
		Pos:   pos,
		Chunk: protocol.ChunkPos{int32(pos[0] >> 4), int32(pos[2] >> 4)},
	}
}
