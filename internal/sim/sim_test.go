package sim

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/dungeon"
	"rainbow-rogue/internal/gamemap"
)

var imp = content.MonsterTemplate{
	Name: "Ember Imp", Glyph: 'i', Color: tcell.ColorRed,
	HP: 6, Power: 3, Defense: 0,
}

var thermalDraft = content.ConsumableTemplate{
	Name: "Thermal Draft", Uses: 1,
	Effect: component.Effect{Kind: component.EffectHeal, Amount: 8},
}

func pt(x, y int) gamemap.Point { return gamemap.Point{X: x, Y: y} }

// openLayer is a w×h red layer with a wall border.
func openLayer(w, h int) *gamemap.Layer {
	l := gamemap.NewEmptyLayer(gamemap.PlaneRed, w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			l.Set(pt(x, y), gamemap.MakeFloor(gamemap.PlaneRed))
		}
	}
	return l
}

func newSim(x, y int, starters ...content.ConsumableTemplate) *Sim {
	spawn := component.Position{X: x, Y: y, Floor: 0, Plane: gamemap.PlaneRed}
	return New(spawn, 8, starters, 1)
}

func TestAdvanceResolvesPlayerIntent(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(3, 3)

	s.QueuePlayerIntent(1, 0)
	s.Advance(layer, 0, gamemap.PlaneRed)

	assert.Equal(t, pt(4, 3), s.PlayerPoint())
	assert.Equal(t, uint64(1), s.Turn())
	assert.Contains(t, s.PlayerVisible(), pt(4, 3))
	assert.Contains(t, s.PlayerRemembered(), pt(4, 3))
}

func TestAdvanceIntoWallIsSilent(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(1, 1)

	s.QueuePlayerIntent(-1, 0)
	s.Advance(layer, 0, gamemap.PlaneRed)

	assert.Equal(t, pt(1, 1), s.PlayerPoint())
	assert.Empty(t, s.DrainCombatLog())
}

func TestClearPlayerIntent(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(3, 3)

	s.QueuePlayerIntent(1, 0)
	s.ClearPlayerIntent()
	s.Advance(layer, 0, gamemap.PlaneRed)

	assert.Equal(t, pt(3, 3), s.PlayerPoint())
}

func TestPlayerAttackTwoHits(t *testing.T) {
	s := newSim(3, 3)
	id := s.SpawnMonster(imp, pt(4, 3), 0, gamemap.PlaneRed)

	rep, ok := s.PlayerAttack(pt(4, 3), 0, gamemap.PlaneRed)
	require.True(t, ok)
	assert.Equal(t, "You strike Ember Imp for 5", rep.Hit)
	assert.Empty(t, rep.Kill)
	name, ok := s.MonsterName(id)
	require.True(t, ok)
	assert.Equal(t, "Ember Imp", name)

	rep, ok = s.PlayerAttack(pt(4, 3), 0, gamemap.PlaneRed)
	require.True(t, ok)
	assert.Equal(t, "Ember Imp collapses into specter dust.", rep.Kill)

	_, found := s.EntityAt(pt(4, 3), 0, gamemap.PlaneRed)
	assert.False(t, found, "dead monster must be gone")
	s.EachRenderable(0, gamemap.PlaneRed, false, func(p gamemap.Point, _ component.Renderable) {
		t.Errorf("unexpected renderable at %s", p)
	})
	assert.Equal(t, 0, s.MonsterCount(0, gamemap.PlaneRed))
}

func TestPlayerAttackEmptyTile(t *testing.T) {
	s := newSim(3, 3)
	_, ok := s.PlayerAttack(pt(4, 3), 0, gamemap.PlaneRed)
	assert.False(t, ok)
}

func TestMonstersOnOtherPlanesAreSeparate(t *testing.T) {
	s := newSim(3, 3)
	s.SpawnMonster(imp, pt(4, 3), 0, gamemap.PlaneBlue)

	_, ok := s.PlayerAttack(pt(4, 3), 0, gamemap.PlaneRed)
	assert.False(t, ok)
	assert.Equal(t, 1, s.MonsterCount(0, gamemap.PlaneBlue))
	assert.Equal(t, 0, s.MonsterCount(0, gamemap.PlaneRed))
}

func TestUseConsumable(t *testing.T) {
	d := dungeon.New(40, 30, 7, nil)
	f, _ := d.Ensure(0)
	spawn := component.Position{Floor: 0, Plane: gamemap.PlaneRed}.At(f.SpawnPoint())
	s := New(spawn, 8, []content.ConsumableTemplate{thermalDraft}, 7)

	_, ok := s.UseConsumable(3, d, 0, gamemap.PlaneRed)
	assert.False(t, ok, "missing slot")
	_, ok = s.UseConsumable(0, d, 5, gamemap.PlaneRed)
	assert.False(t, ok, "missing floor")
	require.Len(t, s.PlayerInventory(), 1, "failed uses change nothing")

	lines, ok := s.UseConsumable(0, d, 0, gamemap.PlaneRed)
	require.True(t, ok)
	assert.Equal(t, []string{"Activated Thermal Draft", "No further vitality restored."}, lines)
	assert.Empty(t, s.PlayerInventory(), "single-use slot is removed")

	_, ok = s.UseConsumable(0, d, 0, gamemap.PlaneRed)
	assert.False(t, ok)
}

func TestSetPlayerPositionRetints(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(3, 3)
	s.Refresh(layer, 0, gamemap.PlaneRed)

	s.SetPlayerPosition(pt(5, 5), 0, gamemap.PlaneBlue)

	pos := s.PlayerPosition()
	assert.Equal(t, gamemap.PlaneBlue, pos.Plane)
	assert.Equal(t, pt(5, 5), pos.Point())

	var seen []component.Renderable
	s.EachRenderable(0, gamemap.PlaneBlue, true, func(_ gamemap.Point, r component.Renderable) {
		seen = append(seen, r)
	})
	require.Len(t, seen, 1)
	assert.Equal(t, gamemap.PlaneBlue.Color(), seen[0].FGColor)

	blue := gamemap.NewEmptyLayer(gamemap.PlaneBlue, 12, 12)
	for y := 1; y < 11; y++ {
		for x := 1; x < 11; x++ {
			blue.Set(pt(x, y), gamemap.MakeFloor(gamemap.PlaneBlue))
		}
	}
	turn := s.Turn()
	s.Refresh(blue, 0, gamemap.PlaneBlue)
	assert.Equal(t, turn, s.Turn(), "refresh spends no turn")
	assert.Equal(t, pt(5, 5), s.PlayerVisible()[0])
}

func TestReadsAreCopies(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(3, 3, thermalDraft)
	s.Refresh(layer, 0, gamemap.PlaneRed)

	vis := s.PlayerVisible()
	require.NotEmpty(t, vis)
	vis[0] = pt(99, 99)
	assert.NotEqual(t, pt(99, 99), s.PlayerVisible()[0])

	inv := s.PlayerInventory()
	inv[0].UsesRemaining = 42
	assert.Equal(t, 1, s.PlayerInventory()[0].UsesRemaining)
}

func TestPendingMonsterIntents(t *testing.T) {
	layer := openLayer(12, 12)
	s := newSim(3, 3)
	s.SpawnMonster(imp, pt(6, 3), 0, gamemap.PlaneRed)
	assert.False(t, s.PendingMonsterIntents())

	// A chasing monster's intent is produced and consumed in the same pass.
	s.Advance(layer, 0, gamemap.PlaneRed)
	assert.False(t, s.PendingMonsterIntents())

	id, ok := s.EntityAt(pt(5, 3), 0, gamemap.PlaneRed)
	require.True(t, ok, "monster stepped toward the player")
	name, _ := s.MonsterName(id)
	assert.Equal(t, "Ember Imp", name)
}

func TestSetPlayerPositionWithoutViewshed(t *testing.T) {
	s := newSim(3, 3)
	s.world.Remove(s.player, component.CViewshed)

	s.SetPlayerPosition(pt(4, 4), 0, gamemap.PlaneGreen)

	assert.Equal(t, pt(4, 4), s.PlayerPoint())
	assert.False(t, s.world.Has(s.player, component.CViewshed), "no viewshed is invented")
}

func TestGrantConsumablesSkipsHeldNames(t *testing.T) {
	s := newSim(3, 3, thermalDraft)
	shard := content.ConsumableTemplate{
		Name: "Phase Shard", Uses: 1,
		Effect: component.Effect{Kind: component.EffectBlink, Range: 4},
	}

	added := s.GrantConsumables([]content.ConsumableTemplate{thermalDraft, shard})
	assert.Equal(t, []string{"Phase Shard"}, added)

	inv := s.PlayerInventory()
	require.Len(t, inv, 2)
	assert.Equal(t, "Thermal Draft", inv[0].Name)
	assert.Equal(t, component.EffectBlink, inv[1].Effect.Kind)

	assert.Empty(t, s.GrantConsumables([]content.ConsumableTemplate{shard}))
	assert.Len(t, s.PlayerInventory(), 2)
}
