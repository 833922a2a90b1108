package core

import "fmt"

// Entity is an opaque identifier for one node of the widget tree
// Low 32 bits hold the arena slot index, high 32 bits the slot generation
type Entity uint64

// NoEntity is the zero identifier, never handed out by a tree
const NoEntity Entity = 0

// NewEntity packs a slot index and generation into an Entity
func NewEntity(index, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index returns the arena slot index
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Generation returns the slot generation the identifier was issued with
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsNone reports whether e is the zero identifier
func (e Entity) IsNone() bool {
	return e == NoEntity
}

func (e Entity) String() string {
	if e == NoEntity {
		return "entity(none)"
	}
	return fmt.Sprintf("entity(%d:%d)", e.Index(), e.Generation())
}
