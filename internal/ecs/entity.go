package ecs

import "strconv"

// EntityID is an opaque handle for one simulation entity.
type EntityID uint64

// NilEntity is never handed out by a World.
const NilEntity EntityID = 0

func (id EntityID) String() string {
	return "e" + strconv.FormatUint(uint64(id), 10)
}

// ComponentType keys a component store inside a World.
type ComponentType uint8

// Component is implemented by every data struct attached to an entity.
type Component interface {
	Type() ComponentType
}
