package system

import (
	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

// openLayer creates a w×h layer with a wall border and open floor inside.
func openLayer(w, h int) *gamemap.Layer {
	l := gamemap.NewEmptyLayer(gamemap.PlaneRed, w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			l.Set(gamemap.Point{X: x, Y: y}, gamemap.MakeFloor(gamemap.PlaneRed))
		}
	}
	return l
}

func pt(x, y int) gamemap.Point { return gamemap.Point{X: x, Y: y} }

func redPos(x, y int) component.Position {
	return component.Position{X: x, Y: y, Floor: 0, Plane: gamemap.PlaneRed}
}

// newWorld creates a world with a 20/20 5/1 player at (px, py) on the red
// plane of floor 0.
func newWorld(px, py int) (*ecs.World, ecs.EntityID) {
	w := ecs.NewWorld()
	player := w.Spawn(
		redPos(px, py),
		component.TagPlayer{},
		component.CombatStats{MaxHP: 20, HP: 20, Power: 5, Defense: 1},
		component.Viewshed{Radius: 8, Dirty: true},
		component.Actor{Speed: 60},
	)
	return w, player
}

func addMonster(w *ecs.World, x, y, hp, maxHP int, wander float64) ecs.EntityID {
	return w.Spawn(
		redPos(x, y),
		component.TagMonster{},
		component.Monster{Name: "Ember Imp"},
		component.Brain{WanderChance: wander},
		component.CombatStats{MaxHP: maxHP, HP: hp, Power: 3, Defense: 0},
	)
}

func ctxFor(l *gamemap.Layer, player gamemap.Point) *Context {
	return NewContext(l, 0, gamemap.PlaneRed, player)
}

func intentOf(w *ecs.World, id ecs.EntityID) (component.IntentStep, bool) {
	c := w.Get(id, component.CIntentStep)
	if c == nil {
		return component.IntentStep{}, false
	}
	return c.(component.IntentStep), true
}

func posOf(w *ecs.World, id ecs.EntityID) component.Position {
	return w.Get(id, component.CPosition).(component.Position)
}

func statsOf(w *ecs.World, id ecs.EntityID) component.CombatStats {
	return w.Get(id, component.CCombatStats).(component.CombatStats)
}
