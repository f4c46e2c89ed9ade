package system

import (
	"math/rand"
	"testing"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

func giveItems(w *ecs.World, player ecs.EntityID, slots ...component.InventorySlot) {
	w.Add(player, component.Inventory{Slots: slots})
}

func slot(name string, uses int, eff component.Effect) component.InventorySlot {
	return component.InventorySlot{Name: name, UsesRemaining: uses, Effect: eff}
}

func slotsOf(w *ecs.World, id ecs.EntityID) []component.InventorySlot {
	return w.Get(id, component.CInventory).(component.Inventory).Slots
}

func TestHealClampsToMax(t *testing.T) {
	w, player := newWorld(5, 5)
	w.Add(player, component.CombatStats{MaxHP: 20, HP: 15, Power: 5, Defense: 1})
	giveItems(w, player, slot("Thermal Draft", 2, component.Effect{Kind: component.EffectHeal, Amount: 8}))
	l := openLayer(10, 10)
	rng := rand.New(rand.NewSource(1))

	lines, ok := UseConsumable(w, player, 0, l, rng)
	if !ok {
		t.Fatal("expected use to succeed")
	}
	if len(lines) != 2 || lines[0] != "Activated Thermal Draft" || lines[1] != "Recovered 5 HP." {
		t.Errorf("unexpected lines %q", lines)
	}
	if hp := statsOf(w, player).HP; hp != 20 {
		t.Errorf("hp = %d, want 20", hp)
	}

	lines, _ = UseConsumable(w, player, 0, l, rng)
	if lines[1] != "No further vitality restored." {
		t.Errorf("full-hp heal should restore nothing, got %q", lines)
	}
	if len(slotsOf(w, player)) != 0 {
		t.Error("exhausted slot should be removed")
	}
}

func TestUseInvalidSlot(t *testing.T) {
	w, player := newWorld(5, 5)
	giveItems(w, player, slot("Tonic", 1, component.Effect{Kind: component.EffectCleanse}))
	l := openLayer(10, 10)
	rng := rand.New(rand.NewSource(1))

	for _, idx := range []int{-1, 1, 7} {
		if _, ok := UseConsumable(w, player, idx, l, rng); ok {
			t.Errorf("slot %d should be rejected", idx)
		}
	}
	if s := slotsOf(w, player); len(s) != 1 || s[0].UsesRemaining != 1 {
		t.Error("failed use must not change inventory")
	}

	giveItems(w, player, slot("Husk", 0, component.Effect{Kind: component.EffectCleanse}))
	if _, ok := UseConsumable(w, player, 0, l, rng); ok {
		t.Error("spent slot should be rejected")
	}
}

func TestSlotRemovalShiftsIndices(t *testing.T) {
	w, player := newWorld(5, 5)
	giveItems(w, player,
		slot("A", 1, component.Effect{Kind: component.EffectCleanse}),
		slot("B", 1, component.Effect{Kind: component.EffectCleanse}),
	)
	lines, ok := UseConsumable(w, player, 0, openLayer(10, 10), rand.New(rand.NewSource(1)))
	if !ok || lines[1] != "Resonance cleansed of spectral grime." {
		t.Fatalf("unexpected lines %q", lines)
	}
	if s := slotsOf(w, player); len(s) != 1 || s[0].Name != "B" {
		t.Errorf("slot B should move to index 0, got %+v", s)
	}
}

func TestBlinkLandsOnOpenTile(t *testing.T) {
	l := openLayer(12, 12)
	for seed := int64(0); seed < 30; seed++ {
		w, player := newWorld(5, 5)
		addMonster(w, 6, 5, 6, 6, 0)
		giveItems(w, player, slot("Blink Shard", 1, component.Effect{Kind: component.EffectBlink, Range: 2}))

		lines, ok := UseConsumable(w, player, 0, l, rand.New(rand.NewSource(seed)))
		if !ok {
			t.Fatal("blink should resolve")
		}
		dest := posOf(w, player).Point()
		if lines[1] != "Blink to "+dest.String() {
			t.Errorf("seed=%d: unexpected line %q", seed, lines[1])
		}
		if !l.IsWalkable(dest) || dest == pt(6, 5) || dest == pt(5, 5) {
			t.Errorf("seed=%d: blinked onto %v", seed, dest)
		}
		if abs(dest.X-5) > 2 || abs(dest.Y-5) > 2 {
			t.Errorf("seed=%d: %v outside range", seed, dest)
		}
	}
}

func TestBlinkFizzles(t *testing.T) {
	l := gamemap.NewEmptyLayer(gamemap.PlaneRed, 10, 10)
	l.Set(pt(5, 5), gamemap.MakeFloor(gamemap.PlaneRed))
	w, player := newWorld(5, 5)
	giveItems(w, player, slot("Blink Shard", 1, component.Effect{Kind: component.EffectBlink, Range: 3}))

	lines, ok := UseConsumable(w, player, 0, l, rand.New(rand.NewSource(1)))
	if !ok || lines[1] != "Blink fizzles; nowhere to anchor." {
		t.Errorf("unexpected lines %q", lines)
	}
	if posOf(w, player).Point() != pt(5, 5) {
		t.Error("fizzled blink must not move the player")
	}
}

func TestNovaHarmless(t *testing.T) {
	w, player := newWorld(5, 5)
	far := addMonster(w, 15, 15, 6, 6, 0)
	giveItems(w, player, slot("Ember Nova", 1, component.Effect{Kind: component.EffectNova, Damage: 6, Radius: 3}))

	lines, _ := UseConsumable(w, player, 0, openLayer(20, 20), rand.New(rand.NewSource(1)))
	if len(lines) != 2 || lines[1] != "Nova crackles harmlessly." {
		t.Errorf("unexpected lines %q", lines)
	}
	if hp := statsOf(w, far).HP; hp != 6 {
		t.Errorf("out-of-range monster hp changed to %d", hp)
	}
}

func TestNovaBurnsAndKills(t *testing.T) {
	w, player := newWorld(5, 5)
	weak := addMonster(w, 6, 6, 4, 4, 0)
	tough := addMonster(w, 5, 8, 10, 10, 0)
	other := addMonster(w, 5, 6, 2, 2, 0)
	pos := posOf(w, other)
	pos.Plane = gamemap.PlaneBlue
	w.Add(other, pos)

	lines := Nova(w, player, 6, 3)
	want := []string{
		"Ember Imp sears for 6 damage.",
		"Ember Imp disintegrates in prismatic fire.",
		"Ember Imp sears for 6 damage.",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if w.Alive(weak) {
		t.Error("weak monster should be dead")
	}
	if hp := statsOf(w, tough).HP; hp != 4 {
		t.Errorf("tough monster hp = %d, want 4", hp)
	}
	if hp := statsOf(w, other).HP; hp != 2 {
		t.Error("monster on another plane must be untouched")
	}
}
