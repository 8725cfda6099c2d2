package growth

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
)

// BlockSource reads and writes blocks. It is only used for the duration of the call it is passed
// to, so a dragonfly *world.Tx may be passed from inside the transaction it belongs to. The store
// in the world package satisfies it too.
type BlockSource interface {
	Block(pos cube.Pos) world.Block
	SetBlock(pos cube.Pos, b world.Block, opts *world.SetOpts)
}

// Outcome is the result of a single growth attempt.
type Outcome uint8

const (
	// Grown means a block was placed on top of the stack.
	Grown Outcome = iota
	// Capped means the stack had already reached the maximum height.
	Capped
	// Blocked means the position above the stack was not air, or it could not hold a new block
	// because it is outside the world or in a chunk that is not loaded.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Grown:
		return "grown"
	case Capped:
		return "capped"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// growOpts places grown blocks without notifying neighbours, so that placing a block does not
// itself trigger further growth or physics.
var growOpts = &world.SetOpts{DisableBlockUpdates: true}

// Top returns the highest block of the stack that the position passed is part of.
func Top(src BlockSource, pos cube.Pos, sp Species) cube.Pos {
	top := pos
	for sp.Match(src.Block(top.Side(cube.FaceUp))) {
		top = top.Side(cube.FaceUp)
	}
	return top
}

// Height returns the height of the stack that the position passed is part of, counting every
// contiguous block of the species above and below it.
func Height(src BlockSource, pos cube.Pos, sp Species) int {
	return heightBelow(src, Top(src, pos, sp), sp)
}

// heightBelow counts the blocks of the species from top downwards, top included.
func heightBelow(src BlockSource, top cube.Pos, sp Species) int {
	height := 1
	for below := top.Side(cube.FaceDown); sp.Match(src.Block(below)); below = below.Side(cube.FaceDown) {
		height++
	}
	return height
}

// Grow extends the stack containing base by one block, unless the stack is already maxHeight
// blocks tall or the position above its top is not air. Positions the source cannot store read as
// air but drop writes, so the new block is read back before the stack counts as grown. Grow
// returns the top of the stack after the attempt, which is the new block if the stack grew.
func Grow(src BlockSource, base cube.Pos, sp Species, maxHeight int) (cube.Pos, Outcome) {
	top := Top(src, base, sp)
	if heightBelow(src, top, sp) >= maxHeight {
		return top, Capped
	}

	above := top.Side(cube.FaceUp)
	if _, air := src.Block(above).(block.Air); !air {
		return top, Blocked
	}
	src.SetBlock(above, sp.Fresh(), growOpts)
	if !sp.Match(src.Block(above)) {
		return top, Blocked
	}
	return above, Grown
}
