package system

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

// Walkable answers walkability on one layer; blink consults it for
// destinations.
type Walkable interface {
	IsWalkable(gamemap.Point) bool
}

// UseConsumable spends one use of the player's slot and applies its effect.
// It reports false, changing nothing, when the slot does not exist or is
// already spent. The returned lines start with "Activated <name>".
// Monsters killed by a nova are deleted and must be flushed with Maintain.
func UseConsumable(w *ecs.World, player ecs.EntityID, slot int, m Walkable, rng *rand.Rand) ([]string, bool) {
	ic := w.Get(player, component.CInventory)
	if ic == nil {
		return nil, false
	}
	inv := ic.(component.Inventory).Clone()
	if slot < 0 || slot >= len(inv.Slots) || inv.Slots[slot].UsesRemaining <= 0 {
		return nil, false
	}

	inv.Slots[slot].UsesRemaining--
	item := inv.Slots[slot]
	if item.UsesRemaining <= 0 {
		inv.Slots = append(inv.Slots[:slot], inv.Slots[slot+1:]...)
	}
	w.Add(player, inv)

	lines := []string{"Activated " + item.Name}
	eff := item.Effect
	switch eff.Kind {
	case component.EffectHeal:
		if gained, ok := Heal(w, player, eff.Amount); ok {
			if gained > 0 {
				lines = append(lines, fmt.Sprintf("Recovered %d HP.", gained))
			} else {
				lines = append(lines, "No further vitality restored.")
			}
		}
	case component.EffectCleanse:
		lines = append(lines, "Resonance cleansed of spectral grime.")
	case component.EffectBlink:
		if dest, ok := Blink(w, player, eff.Range, m, rng); ok {
			lines = append(lines, "Blink to "+dest.String())
		} else {
			lines = append(lines, "Blink fizzles; nowhere to anchor.")
		}
	case component.EffectNova:
		lines = append(lines, Nova(w, player, eff.Damage, eff.Radius)...)
	}
	return lines, true
}

// Heal raises id's hp by amount, clamped to its max, and returns the actual
// gain.
func Heal(w *ecs.World, id ecs.EntityID, amount int) (int, bool) {
	sc := w.Get(id, component.CCombatStats)
	if sc == nil {
		return 0, false
	}
	stats := sc.(component.CombatStats)
	before := stats.HP
	stats.HP = min(stats.MaxHP, stats.HP+max(0, amount))
	w.Add(id, stats)
	return stats.HP - before, true
}

// BlinkCandidates lists the walkable, unoccupied points in the square of
// half-width radius around id, in row-major order.
func BlinkCandidates(w *ecs.World, id ecs.EntityID, radius int, m Walkable) []gamemap.Point {
	pc := w.Get(id, component.CPosition)
	if pc == nil {
		return nil
	}
	pos := pc.(component.Position)

	occupied := mapset.New[gamemap.Point]()
	for _, other := range w.Query(component.CPosition) {
		op := w.Get(other, component.CPosition).(component.Position)
		if op.On(pos.Floor, pos.Plane) {
			occupied.Put(op.Point())
		}
	}

	var out []gamemap.Point
	center := pos.Point()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			pt := center.Add(dx, dy)
			if m.IsWalkable(pt) && !occupied.Has(pt) {
				out = append(out, pt)
			}
		}
	}
	return out
}

// Blink teleports id to a random candidate from BlinkCandidates and marks
// its viewshed dirty. It reports false when no candidate exists.
func Blink(w *ecs.World, id ecs.EntityID, radius int, m Walkable, rng *rand.Rand) (gamemap.Point, bool) {
	candidates := BlinkCandidates(w, id, radius, m)
	if len(candidates) == 0 {
		return gamemap.Point{}, false
	}
	dest := candidates[rng.Intn(len(candidates))]
	pos := w.Get(id, component.CPosition).(component.Position)
	w.Add(id, pos.At(dest))
	if vc := w.Get(id, component.CViewshed); vc != nil {
		vs := vc.(component.Viewshed)
		vs.Dirty = true
		w.Add(id, vs)
	}
	return dest, true
}

// Nova deals damage to every monster on id's layer within Euclidean radius.
// Killed monsters are deleted.
func Nova(w *ecs.World, id ecs.EntityID, damage, radius int) []string {
	pc := w.Get(id, component.CPosition)
	if pc == nil {
		return []string{"Nova crackles harmlessly."}
	}
	pos := pc.(component.Position)

	var lines []string
	for _, m := range w.Query(component.CTagMonster, component.CPosition, component.CCombatStats) {
		mp := w.Get(m, component.CPosition).(component.Position)
		if !mp.On(pos.Floor, pos.Plane) || distance(mp.Point(), pos.Point()) > float64(radius) {
			continue
		}
		stats := w.Get(m, component.CCombatStats).(component.CombatStats)
		stats.HP = saturatingSub(stats.HP, damage)
		w.Add(m, stats)

		name := monsterName(w, m)
		lines = append(lines, fmt.Sprintf("%s sears for %d damage.", name, damage))
		if stats.HP == 0 {
			lines = append(lines, name+" disintegrates in prismatic fire.")
			w.Delete(m)
		}
	}
	if len(lines) == 0 {
		return []string{"Nova crackles harmlessly."}
	}
	return lines
}
