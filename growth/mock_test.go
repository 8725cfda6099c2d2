package growth

import (
	"maps"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
)

type mockWorld map[cube.Pos]world.Block

func (m mockWorld) Block(pos cube.Pos) world.Block {
	if b, ok := m[pos]; ok {
		return b
	}
	return block.Air{}
}

func (m mockWorld) SetBlock(pos cube.Pos, b world.Block, _ *world.SetOpts) {
	m[pos] = b
}

func (m mockWorld) clone() mockWorld {
	return maps.Clone(m)
}

// stack places height blocks of b on top of each other, starting at base.
func (m mockWorld) stack(base cube.Pos, height int, b world.Block) {
	for i := 0; i < height; i++ {
		m[base.Add(cube.Pos{0, i, 0})] = b
	}
}

// boundedWorld reads air and drops writes outside its range, like a real world does above its
// build limit.
type boundedWorld struct {
	mockWorld
	r cube.Range
}

func newBoundedWorld(r cube.Range) boundedWorld {
	return boundedWorld{mockWorld: mockWorld{}, r: r}
}

func (w boundedWorld) Block(pos cube.Pos) world.Block {
	if pos.OutOfBounds(w.r) {
		return block.Air{}
	}
	return w.mockWorld.Block(pos)
}

func (w boundedWorld) SetBlock(pos cube.Pos, b world.Block, opts *world.SetOpts) {
	if pos.OutOfBounds(w.r) {
		return
	}
	w.mockWorld.SetBlock(pos, b, opts)
}

// constRand always returns the same sample.
type constRand float64

func (r constRand) Float64() float64 {
	return float64(r)
}

// seqRand returns the samples in order, repeating the last one once exhausted.
type seqRand struct {
	samples []float64
	next    int
}

func (r *seqRand) Float64() float64 {
	if r.next >= len(r.samples) {
		return r.samples[len(r.samples)-1]
	}
	v := r.samples[r.next]
	r.next++
	return v
}
