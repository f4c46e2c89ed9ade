package system

import (
	"math"
	"math/rand"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

const (
	// FleeRatio is the hp ratio at or below which a monster runs.
	FleeRatio = 0.3
	// FleeDistance and ChaseDistance bound how close the player must be.
	FleeDistance  = 6.0
	ChaseDistance = 8.0
)

var cardinals = [4]gamemap.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// RunWander queues at most one IntentStep per monster on the active layer.
// Wounded monsters near the player flee, healthy ones in range chase, and
// the rest wander at random with their brain's probability. A monster that
// wants to flee or chase but has no open step holds still.
func RunWander(w *ecs.World, ctx *Context, rng *rand.Rand) {
	for _, id := range w.Query(component.CTagMonster, component.CBrain, component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		if !pos.On(ctx.Floor, ctx.Plane) {
			continue
		}
		brain := w.Get(id, component.CBrain).(component.Brain)
		from := pos.Point()

		if sc := w.Get(id, component.CCombatStats); sc != nil {
			stats := sc.(component.CombatStats)
			dist := distance(from, ctx.PlayerPoint)
			switch {
			case stats.Ratio() <= FleeRatio && dist <= FleeDistance:
				if step, ok := stepAway(from, ctx.PlayerPoint, ctx); ok {
					w.Add(id, step)
				}
				continue
			case dist <= ChaseDistance:
				if step, ok := stepTowards(from, ctx.PlayerPoint, ctx); ok {
					w.Add(id, step)
				}
				continue
			}
		}

		if rng.Float64() >= brain.WanderChance {
			continue
		}
		dir := cardinals[rng.Intn(len(cardinals))]
		if ctx.IsWalkable(from.Add(dir.X, dir.Y)) {
			w.Add(id, component.IntentStep{DX: dir.X, DY: dir.Y})
		}
	}
}

func distance(a, b gamemap.Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func stepTowards(from, to gamemap.Point, ctx *Context) (component.IntentStep, bool) {
	return trySteps(from, to.X-from.X, to.Y-from.Y, ctx)
}

func stepAway(from, threat gamemap.Point, ctx *Context) (component.IntentStep, bool) {
	return trySteps(from, from.X-threat.X, from.Y-threat.Y, ctx)
}

// trySteps takes one unit step along the axis with the larger delta first
// (x on ties), then the other, skipping zero and non-walkable steps.
func trySteps(from gamemap.Point, dx, dy int, ctx *Context) (component.IntentStep, bool) {
	axes := [2]gamemap.Point{{X: sign(dx)}, {Y: sign(dy)}}
	if abs(dy) > abs(dx) {
		axes[0], axes[1] = axes[1], axes[0]
	}
	for _, d := range axes {
		if d == (gamemap.Point{}) {
			continue
		}
		if ctx.IsWalkable(from.Add(d.X, d.Y)) {
			return component.IntentStep{DX: d.X, DY: d.Y}, true
		}
	}
	return component.IntentStep{}, false
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
