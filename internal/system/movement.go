package system

import (
	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

// MoveResult describes what a resolved IntentStep did.
type MoveResult uint8

const (
	MoveOK       MoveResult = iota // position updated
	MoveBlocked                    // wall, out-of-bounds or occupied
	MoveAttack                     // monster bumped the player
)

// RunMovement resolves every IntentStep on the active layer. A monster
// stepping onto the player attacks instead of moving. Every processed intent
// is removed, whatever the outcome.
func RunMovement(w *ecs.World, ctx *Context, log *CombatLog) {
	player, playerPos, hasPlayer := findPlayer(w)

	for _, id := range w.Query(component.CIntentStep, component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		if !pos.On(ctx.Floor, ctx.Plane) {
			continue
		}
		intent := w.Get(id, component.CIntentStep).(component.IntentStep)
		w.Remove(id, component.CIntentStep)

		target := pos.Point().Add(intent.DX, intent.DY)
		if hasPlayer && id != player && playerPos.On(pos.Floor, pos.Plane) && target == playerPos.Point() {
			monsterAttack(w, id, player, log)
			continue
		}

		if TryMove(w, ctx, id, pos, target) == MoveOK && id == player {
			playerPos = playerPos.At(target)
		}
	}
}

// TryMove relocates id to target when it is walkable and unoccupied, marking
// its viewshed dirty.
func TryMove(w *ecs.World, ctx *Context, id ecs.EntityID, pos component.Position, target gamemap.Point) MoveResult {
	if !ctx.IsWalkable(target) {
		return MoveBlocked
	}
	if other, ok := EntityAt(w, target, pos.Floor, pos.Plane); ok && other != id {
		return MoveBlocked
	}
	w.Add(id, pos.At(target))
	if vc := w.Get(id, component.CViewshed); vc != nil {
		vs := vc.(component.Viewshed)
		vs.Dirty = true
		w.Add(id, vs)
	}
	return MoveOK
}

// monsterAttack resolves a monster bumping the player. A player already at
// 0 hp is left alone so the death line is logged once.
func monsterAttack(w *ecs.World, attacker, player ecs.EntityID, log *CombatLog) {
	if c := w.Get(player, component.CCombatStats); c != nil && c.(component.CombatStats).HP == 0 {
		return
	}
	res, ok := Attack(w, attacker, player)
	if !ok {
		return
	}
	log.Pushf("%s claws you for %d", monsterName(w, attacker), res.Damage)
	if res.Killed {
		log.Push("You feel your spectrum shatter.")
	}
}

// findPlayer returns the player entity and its position.
func findPlayer(w *ecs.World) (ecs.EntityID, component.Position, bool) {
	for _, id := range w.Query(component.CTagPlayer, component.CPosition) {
		return id, w.Get(id, component.CPosition).(component.Position), true
	}
	return ecs.NilEntity, component.Position{}, false
}

// EntityAt returns the lowest-id live entity standing on pt on the given
// layer.
func EntityAt(w *ecs.World, pt gamemap.Point, floor gamemap.FloorID, plane gamemap.Plane) (ecs.EntityID, bool) {
	for _, id := range w.Query(component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		if pos.On(floor, plane) && pos.Point() == pt {
			return id, true
		}
	}
	return ecs.NilEntity, false
}
