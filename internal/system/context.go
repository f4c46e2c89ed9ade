package system

import (
	"rainbow-rogue/internal/gamemap"
)

// Context is the read-only view of the active (floor, plane) handed to every
// system in one pipeline pass. It copies the layer's physics so map edits
// made during the pass are not observed until the next one.
type Context struct {
	Floor         gamemap.FloorID
	Plane         gamemap.Plane
	PlayerPoint   gamemap.Point
	Width, Height int
	walkable      []bool
	blocksSight   []bool
}

// NewContext snapshots layer for a pass on (floor, plane).
func NewContext(layer *gamemap.Layer, floor gamemap.FloorID, plane gamemap.Plane, player gamemap.Point) *Context {
	ctx := &Context{
		Floor:       floor,
		Plane:       plane,
		PlayerPoint: player,
		Width:       layer.Width,
		Height:      layer.Height,
		walkable:    make([]bool, len(layer.Tiles)),
		blocksSight: make([]bool, len(layer.Tiles)),
	}
	for i, t := range layer.Tiles {
		ctx.walkable[i] = !t.BlocksMove
		ctx.blocksSight[i] = t.BlocksSight
	}
	return ctx
}

// InBounds reports whether pt lies on the map.
func (c *Context) InBounds(pt gamemap.Point) bool {
	return pt.X >= 0 && pt.X < c.Width && pt.Y >= 0 && pt.Y < c.Height
}

// IsWalkable is false off the map.
func (c *Context) IsWalkable(pt gamemap.Point) bool {
	if !c.InBounds(pt) {
		return false
	}
	return c.walkable[pt.Y*c.Width+pt.X]
}

// BlocksSight is true off the map.
func (c *Context) BlocksSight(pt gamemap.Point) bool {
	if !c.InBounds(pt) {
		return true
	}
	return c.blocksSight[pt.Y*c.Width+pt.X]
}
