package growth

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// Set holds the positions that may need to grow. Positions are kept in insertion order, so two
// sets built from the same sequence of calls produce identical snapshots.
type Set struct {
	positions *orderedmap.OrderedMap[cube.Pos, Position]
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{positions: orderedmap.NewOrderedMap[cube.Pos, Position]()}
}

// Add inserts the position passed. Adding a position that is already present keeps its original
// place in the iteration order.
func (s *Set) Add(pos Position) {
	if _, ok := s.positions.Get(pos.Pos); ok {
		return
	}
	s.positions.Set(pos.Pos, pos)
}

// Remove removes the position passed, if present.
func (s *Set) Remove(pos cube.Pos) {
	s.positions.Delete(pos)
}

// Contains returns true if the position passed is in the set.
func (s *Set) Contains(pos cube.Pos) bool {
	_, ok := s.positions.Get(pos)
	return ok
}

// RemoveWhere removes every position for which f returns true, and returns how many were removed.
func (s *Set) RemoveWhere(f func(Position) bool) int {
	var matched []cube.Pos
	for el := s.positions.Front(); el != nil; el = el.Next() {
		if f(el.Value) {
			matched = append(matched, el.Key)
		}
	}
	for _, pos := range matched {
		s.positions.Delete(pos)
	}
	return len(matched)
}

// RemoveChunk removes every position inside the chunk passed.
func (s *Set) RemoveChunk(chunkPos protocol.ChunkPos) int {
	return s.RemoveWhere(func(pos Position) bool {
		return pos.Chunk == chunkPos
	})
}

// Len returns the number of positions in the set.
func (s *Set) Len() int {
	return s.positions.Len()
}

// Snapshot returns a copy of the positions in the set. Mutating the set afterwards does not
// affect the returned slice.
func (s *Set) Snapshot() []Position {
	snapshot := make([]Position, 0, s.positions.Len())
	for el := s.positions.Front(); el != nil; el = el.Next() {
		snapshot = append(snapshot, el.Value)
	}
	return snapshot
}

// Clear removes every position from the set.
func (s *Set) Clear() {
	s.positions = orderedmap.NewOrderedMap[cube.Pos, Position]()
}
