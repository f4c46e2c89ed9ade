package component

import (
	"rainbow-rogue/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CInventory ecs.ComponentType = 6

// EffectKind selects what a consumable does when used.
type EffectKind uint8

const (
	EffectHeal EffectKind = iota
	EffectCleanse
	EffectBlink
	EffectNova
)

func (k EffectKind) String() string {
	switch k {
	case EffectHeal:
		return "heal"
	case EffectCleanse:
		return "cleanse"
	case EffectBlink:
		return "blink"
	case EffectNova:
		return "nova"
	}
	return "unknown"
}

// Effect parameterises a consumable. Amount is used by heal, Range by
// blink, Damage and Radius by nova.
type Effect struct {
	Kind   EffectKind
	Amount int
	Range  int
	Damage int
	Radius int
}

// InventorySlot is one stack of a consumable.
type InventorySlot struct {
	Name          string
	Description   string
	UsesRemaining int
	Effect        Effect
	Color         tcell.Color
}

// Inventory is an ordered list of consumable slots. Exhausted slots are
// removed, shifting later slots down.
type Inventory struct {
	Slots []InventorySlot
}

func (Inventory) Type() ecs.ComponentType { return CInventory }

// Clone copies the slot list so callers cannot alias the stored component.
func (inv Inventory) Clone() Inventory {
	return Inventory{Slots: append([]InventorySlot(nil), inv.Slots...)}
}
