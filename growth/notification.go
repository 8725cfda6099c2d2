package growth

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Notification is a change reported by the host that affects which positions are tracked. The
// set of implementations is closed: Appeared, Removed, ContainerInvalidated and Grew.
type Notification interface {
	notification()
}

// Appeared reports that a block was placed at Pos.
type Appeared struct {
	Pos   cube.Pos
	Block world.Block
}

// Removed reports that the block at Pos was broken or replaced.
type Removed struct {
	Pos cube.Pos
}

// ContainerInvalidated reports that a chunk was unloaded. Every position inside it stops being
// tracked.
type ContainerInvalidated struct {
	Chunk protocol.ChunkPos
}

// Grew reports that the host is about to grow the plant Block at Pos by its own rules. Handling
// it returns true if the host should cancel that growth.
type Grew struct {
	Pos   cube.Pos
	Block world.Block
}

func (Appeared) notification()             {}
func (Removed) notification()              {}
func (ContainerInvalidated) notification() {}
func (Grew) notification()                 {}
