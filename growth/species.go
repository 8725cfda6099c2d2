package growth

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/world"
)

// Species is a kind of plant that grows by stacking copies of itself on top of its highest block.
type Species struct {
	name  string
	match func(b world.Block) bool
	fresh world.Block
}

// NewSpecies returns a Species called name. match reports whether a block belongs to the species,
// and fresh is the block placed on top of a stack when it grows.
func NewSpecies(name string, match func(b world.Block) bool, fresh world.Block) Species {
	return Species{name: name, match: match, fresh: fresh}
}

// Name returns the configuration name of the species.
func (s Species) Name() string {
	return s.name
}

// Match returns true if the block passed belongs to the species.
func (s Species) Match(b world.Block) bool {
	return b != nil && s.match(b)
}

// Fresh returns the block placed when a stack of the species grows. It is at its initial growth
// stage.
func (s Species) Fresh() world.Block {
	return s.fresh
}

var (
	// SugarCane grows sugar cane stacks. New blocks start at age 0.
	SugarCane = NewSpecies("sugar_cane", func(b world.Block) bool {
		_, ok := b.(block.SugarCane)
		return ok
	}, block.SugarCane{})
	// Cactus grows cactus stacks. New blocks start at age 0.
	Cactus = NewSpecies("cactus", func(b world.Block) bool {
		_, ok := b.(block.Cactus)
		return ok
	}, block.Cactus{})
)

var speciesByName = map[string]Species{
	SugarCane.Name(): SugarCane,
	Cactus.Name():    Cactus,
}

// SpeciesByName returns the built-in species with the configuration name passed.
func SpeciesByName(name string) (Species, bool) {
	s, ok := speciesByName[name]
	return s, ok
}
