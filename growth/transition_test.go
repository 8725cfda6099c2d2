package growth

import (
	"maps"
	"testing"

	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
)

func TestGrowScenarioCap(t *testing.T) {
	w := mockWorld{}
	base := cube.Pos{0, 64, 0}
	w.stack(base, 2, block.SugarCane{})

	top, outcome := Grow(w, base, SugarCane, 3)
	if outcome != Grown {
		t.Fatalf("expected first attempt to grow, got %v", outcome)
	}
	if want := (cube.Pos{0, 66, 0}); top != want {
		t.Fatalf("expected new top at %v, got %v", want, top)
	}
	if h := Height(w, base, SugarCane); h != 3 {
		t.Fatalf("expected height 3, got %d", h)
	}
	if _, ok := w.Block(top).(block.SugarCane); !ok {
		t.Fatalf("expected sugar cane at %v, got %T", top, w.Block(top))
	}

	if _, outcome := Grow(w, base, SugarCane, 3); outcome != Capped {
		t.Fatalf("expected second attempt to be capped, got %v", outcome)
	}
	if h := Height(w, base, SugarCane); h != 3 {
		t.Fatalf("expected height to stay 3, got %d", h)
	}
}

func TestGrowNeverExceedsMaxHeight(t *testing.T) {
	w := mockWorld{}
	base := cube.Pos{3, 10, -7}
	w.stack(base, 1, block.Cactus{})

	const maxHeight = 8
	prev := 1
	for i := 0; i < 50; i++ {
		// Alternate between the base and whatever block is the current top.
		from := base
		if i%2 == 1 {
			from = Top(w, base, Cactus)
		}
		Grow(w, from, Cactus, maxHeight)

		h := Height(w, base, Cactus)
		if h > maxHeight {
			t.Fatalf("height %d exceeds cap %d after %d attempts", h, maxHeight, i+1)
		}
		if h-prev > 1 {
			t.Fatalf("height jumped from %d to %d in a single attempt", prev, h)
		}
		prev = h
	}
	if prev != maxHeight {
		t.Fatalf("expected stack to reach %d, got %d", maxHeight, prev)
	}
}

func TestGrowIdempotentAtCap(t *testing.T) {
	w := mockWorld{}
	base := cube.Pos{0, 0, 0}
	w.stack(base, 4, block.SugarCane{})
	before := w.clone()

	for _, y := range []int{0, 1, 2, 3} {
		if _, outcome := Grow(w, cube.Pos{0, y, 0}, SugarCane, 4); outcome != Capped {
			t.Fatalf("expected capped from member at y=%d, got %v", y, outcome)
		}
	}
	if !maps.Equal(before, w) {
		t.Fatalf("world changed while growing a capped stack")
	}
}

func TestGrowBlocked(t *testing.T) {
	w := mockWorld{}
	base := cube.Pos{5, 5, 5}
	w.stack(base, 2, block.SugarCane{})
	w[cube.Pos{5, 7, 5}] = block.Stone{}
	before := w.clone()

	top, outcome := Grow(w, base, SugarCane, 32)
	if outcome != Blocked {
		t.Fatalf("expected blocked, got %v", outcome)
	}
	if want := (cube.Pos{5, 6, 5}); top != want {
		t.Fatalf("expected top %v, got %v", want, top)
	}
	if !maps.Equal(before, w) {
		t.Fatalf("world changed while growth was blocked")
	}
}

func TestGrowOtherSpeciesBlocks(t *testing.T) {
	w := mockWorld{}
	base := cube.Pos{0, 0, 0}
	w.stack(base, 1, block.SugarCane{})
	w[cube.Pos{0, 1, 0}] = block.Cactus{}

	if _, outcome := Grow(w, base, SugarCane, 32); outcome != Blocked {
		t.Fatalf("expected a different plant on top to block growth, got %v", outcome)
	}
}

func TestGrowNonPositiveMaxHeight(t *testing.T) {
	for _, maxHeight := range []int{0, -5} {
		w := mockWorld{}
		w.stack(cube.Pos{}, 1, block.SugarCane{})
		if _, outcome := Grow(w, cube.Pos{}, SugarCane, maxHeight); outcome != Capped {
			t.Fatalf("maxHeight %d: expected capped, got %v", maxHeight, outcome)
		}
	}
}

func TestHeightFromMiddle(t *testing.T) {
	w := mockWorld{}
	w.stack(cube.Pos{0, 10, 0}, 5, block.SugarCane{})
	w[cube.Pos{0, 9, 0}] = block.Dirt{}

	for y := 10; y < 15; y++ {
		if h := Height(w, cube.Pos{0, y, 0}, SugarCane); h != 5 {
			t.Fatalf("expected height 5 from y=%d, got %d", y, h)
		}
	}
	if top := Top(w, cube.Pos{0, 11, 0}, SugarCane); top != (cube.Pos{0, 14, 0}) {
		t.Fatalf("unexpected top %v", top)
	}
}

func TestGrowPlacesFreshBlock(t *testing.T) {
	w := mockWorld{}
	w.stack(cube.Pos{}, 1, block.SugarCane{Age: 9})

	top, outcome := Grow(w, cube.Pos{}, SugarCane, 32)
	if outcome != Grown {
		t.Fatalf("expected growth, got %v", outcome)
	}
	if b, _ := w.Block(top).(block.SugarCane); b.Age != 0 {
		t.Fatalf("expected new block at age 0, got %d", b.Age)
	}
}

func TestGrowAtWorldTop(t *testing.T) {
	w := newBoundedWorld(cube.Range{-64, 319})
	w.stack(cube.Pos{0, 317, 0}, 3, block.SugarCane{})
	before := w.clone()

	top, outcome := Grow(w, cube.Pos{0, 317, 0}, SugarCane, 32)
	if outcome != Blocked {
		t.Fatalf("expected growth past the top of the world to be blocked, got %v", outcome)
	}
	if want := (cube.Pos{0, 319, 0}); top != want {
		t.Fatalf("expected top %v, got %v", want, top)
	}
	if !maps.Equal(before, w.mockWorld) {
		t.Fatalf("world changed while growing past its top")
	}
}
