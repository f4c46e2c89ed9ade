package component

import (
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

const CViewshed ecs.ComponentType = 3

// Viewshed tracks what an entity can see. Visible is rebuilt whenever Dirty
// is set; Remembered only grows.
type Viewshed struct {
	Radius     int
	Dirty      bool
	Visible    []gamemap.Point
	Remembered []gamemap.Point
}

func (Viewshed) Type() ecs.ComponentType { return CViewshed }
