// Package sim is the simulation core: it owns the entity store and runs the
// system pipeline against whichever (floor, plane) the caller names. All
// reads hand out copies.
package sim

import (
	"math/rand"
	"slices"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/dungeon"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/factory"
	"rainbow-rogue/internal/gamemap"
	"rainbow-rogue/internal/system"
)

// Sim is one run's entity world plus the pipeline that mutates it.
type Sim struct {
	world    *ecs.World
	player   ecs.EntityID
	pipeline *system.Pipeline
	log      *system.CombatLog
	rng      *rand.Rand
	turn     uint64
}

// New creates the world and its player at spawn. seed drives monster AI and
// blink destinations.
func New(spawn component.Position, fovRadius int, starters []content.ConsumableTemplate, seed int64) *Sim {
	w := ecs.NewWorld()
	log := &system.CombatLog{}
	return &Sim{
		world:    w,
		player:   factory.NewPlayer(w, spawn, fovRadius, starters),
		pipeline: system.NewPipeline(rand.New(rand.NewSource(seed)), log),
		log:      log,
		rng:      rand.New(rand.NewSource(seed ^ 0x51ec5ead)),
	}
}

// Player returns the player's entity id.
func (s *Sim) Player() ecs.EntityID { return s.player }

// Turn counts completed pipeline passes.
func (s *Sim) Turn() uint64 { return s.turn }

// Advance runs one pipeline pass against layer, which must be the
// (floor, plane) layer.
func (s *Sim) Advance(layer *gamemap.Layer, floor gamemap.FloorID, plane gamemap.Plane) {
	ctx := system.NewContext(layer, floor, plane, s.PlayerPoint())
	s.pipeline.Run(s.world, ctx)
	s.turn++
}

// Refresh recomputes dirty viewsheds on the layer without spending a turn.
func (s *Sim) Refresh(layer *gamemap.Layer, floor gamemap.FloorID, plane gamemap.Plane) {
	system.RunFOV(s.world, system.NewContext(layer, floor, plane, s.PlayerPoint()))
}

// QueuePlayerIntent sets the player's pending step, replacing any other.
func (s *Sim) QueuePlayerIntent(dx, dy int) {
	s.world.Add(s.player, component.IntentStep{DX: dx, DY: dy})
}

// ClearPlayerIntent drops the player's pending step, if any.
func (s *Sim) ClearPlayerIntent() {
	s.world.Remove(s.player, component.CIntentStep)
}

// PlayerAttack strikes whatever stands on target. It reports false when
// nothing attackable is there.
func (s *Sim) PlayerAttack(target gamemap.Point, floor gamemap.FloorID, plane gamemap.Plane) (system.AttackReport, bool) {
	id, ok := s.EntityAt(target, floor, plane)
	if !ok {
		return system.AttackReport{}, false
	}
	rep, ok := system.PlayerAttack(s.world, s.player, id)
	s.world.Maintain()
	return rep, ok
}

// UseConsumable spends one use of slot. It reports false when the slot is
// missing, spent, or the layer does not exist.
func (s *Sim) UseConsumable(slot int, d *dungeon.Dungeon, floor gamemap.FloorID, plane gamemap.Plane) ([]string, bool) {
	layer, ok := d.Layer(floor, plane)
	if !ok {
		return nil, false
	}
	lines, ok := system.UseConsumable(s.world, s.player, slot, layer, s.rng)
	s.world.Maintain()
	return lines, ok
}

// GrantConsumables appends a slot for every template the player does not
// already hold by name and returns the names added.
func (s *Sim) GrantConsumables(templates []content.ConsumableTemplate) []string {
	inv := component.Inventory{}
	if c := s.world.Get(s.player, component.CInventory); c != nil {
		inv = c.(component.Inventory).Clone()
	}
	var added []string
	for _, t := range templates {
		held := slices.ContainsFunc(inv.Slots, func(slot component.InventorySlot) bool {
			return slot.Name == t.Name
		})
		if held {
			continue
		}
		inv.Slots = append(inv.Slots, t.Slot())
		added = append(added, t.Name)
	}
	s.world.Add(s.player, inv)
	return added
}

// SpawnMonster places a monster built from tmpl.
func (s *Sim) SpawnMonster(tmpl content.MonsterTemplate, pt gamemap.Point, floor gamemap.FloorID, plane gamemap.Plane) ecs.EntityID {
	pos := component.Position{X: pt.X, Y: pt.Y, Floor: floor, Plane: plane}
	return factory.NewMonster(s.world, tmpl, pos)
}

// PlayerPosition returns the player's full position.
func (s *Sim) PlayerPosition() component.Position {
	if c := s.world.Get(s.player, component.CPosition); c != nil {
		return c.(component.Position)
	}
	return component.Position{}
}

// PlayerPoint returns the player's map point.
func (s *Sim) PlayerPoint() gamemap.Point { return s.PlayerPosition().Point() }

// PlayerStats returns the player's combat stats.
func (s *Sim) PlayerStats() (component.CombatStats, bool) {
	c := s.world.Get(s.player, component.CCombatStats)
	if c == nil {
		return component.CombatStats{}, false
	}
	return c.(component.CombatStats), true
}

func (s *Sim) viewshed() component.Viewshed {
	if c := s.world.Get(s.player, component.CViewshed); c != nil {
		return c.(component.Viewshed)
	}
	return component.Viewshed{}
}

// PlayerVisible returns a copy of the player's visible points.
func (s *Sim) PlayerVisible() []gamemap.Point {
	return slices.Clone(s.viewshed().Visible)
}

// PlayerRemembered returns a copy of every point the player has seen on any
// layer since the run began.
func (s *Sim) PlayerRemembered() []gamemap.Point {
	return slices.Clone(s.viewshed().Remembered)
}

// PlayerInventory returns a copy of the player's slots.
func (s *Sim) PlayerInventory() []component.InventorySlot {
	if c := s.world.Get(s.player, component.CInventory); c != nil {
		return c.(component.Inventory).Clone().Slots
	}
	return nil
}

// DrainCombatLog returns and clears the messages produced by passes.
func (s *Sim) DrainCombatLog() []string { return s.log.Drain() }

// EachRenderable calls fn for every renderable entity on (floor, plane) in
// creation order, optionally skipping the player.
func (s *Sim) EachRenderable(floor gamemap.FloorID, plane gamemap.Plane, includePlayer bool, fn func(gamemap.Point, component.Renderable)) {
	for _, id := range s.world.Query(component.CPosition, component.CRenderable) {
		if id == s.player && !includePlayer {
			continue
		}
		pos := s.world.Get(id, component.CPosition).(component.Position)
		if !pos.On(floor, plane) {
			continue
		}
		fn(pos.Point(), s.world.Get(id, component.CRenderable).(component.Renderable))
	}
}

// EntityAt returns the entity standing on pt, if any.
func (s *Sim) EntityAt(pt gamemap.Point, floor gamemap.FloorID, plane gamemap.Plane) (ecs.EntityID, bool) {
	return system.EntityAt(s.world, pt, floor, plane)
}

// MonsterName returns the display name of a monster entity.
func (s *Sim) MonsterName(id ecs.EntityID) (string, bool) {
	if c := s.world.Get(id, component.CMonster); c != nil {
		return c.(component.Monster).Name, true
	}
	return "", false
}

// SetPlayerPosition teleports the player, retints it for the new plane and
// marks its viewshed dirty.
func (s *Sim) SetPlayerPosition(pt gamemap.Point, floor gamemap.FloorID, plane gamemap.Plane) {
	s.world.Add(s.player, component.Position{X: pt.X, Y: pt.Y, Floor: floor, Plane: plane})
	if c := s.world.Get(s.player, component.CRenderable); c != nil {
		r := c.(component.Renderable)
		r.FGColor = plane.Color()
		s.world.Add(s.player, r)
	}
	if c := s.world.Get(s.player, component.CViewshed); c != nil {
		vs := c.(component.Viewshed)
		vs.Dirty = true
		s.world.Add(s.player, vs)
	}
}

// PendingMonsterIntents reports whether any monster holds an IntentStep.
func (s *Sim) PendingMonsterIntents() bool {
	return len(s.world.Query(component.CTagMonster, component.CIntentStep)) > 0
}

// MonsterCount reports how many live monsters stand on (floor, plane).
func (s *Sim) MonsterCount(floor gamemap.FloorID, plane gamemap.Plane) int {
	n := 0
	for _, id := range s.world.Query(component.CTagMonster, component.CPosition) {
		if s.world.Get(id, component.CPosition).(component.Position).On(floor, plane) {
			n++
		}
	}
	return n
}
