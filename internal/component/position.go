package component

import (
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

const CPosition ecs.ComponentType = 1

// Position places an entity on one (floor, plane) layer.
type Position struct {
	X, Y  int
	Floor gamemap.FloorID
	Plane gamemap.Plane
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Point drops the floor and plane.
func (p Position) Point() gamemap.Point { return gamemap.Point{X: p.X, Y: p.Y} }

// On reports whether p lies on the given floor and plane.
func (p Position) On(floor gamemap.FloorID, plane gamemap.Plane) bool {
	return p.Floor == floor && p.Plane == plane
}

// At returns a copy of p moved to pt on the same layer.
func (p Position) At(pt gamemap.Point) Position {
	p.X, p.Y = pt.X, pt.Y
	return p
}
