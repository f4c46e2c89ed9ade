package factory

import (
	"github.com/gdamore/tcell/v2"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/content"
	"rainbow-rogue/internal/ecs"
)

// Player defaults.
const (
	PlayerGlyph   = '@'
	PlayerSpeed   = 60
	PlayerMaxHP   = 20
	PlayerPower   = 5
	PlayerDefense = 1

	playerOrder  = 2
	monsterOrder = 1
)

// NewPlayer creates the player entity at pos, tinted with its plane's color
// and carrying one slot per starter consumable.
func NewPlayer(w *ecs.World, pos component.Position, fovRadius int, starters []content.ConsumableTemplate) ecs.EntityID {
	inv := component.Inventory{}
	for _, s := range starters {
		inv.Slots = append(inv.Slots, s.Slot())
	}
	return w.Spawn(
		pos,
		component.Renderable{
			Glyph:       PlayerGlyph,
			FGColor:     pos.Plane.Color(),
			BGColor:     tcell.ColorBlack,
			RenderOrder: playerOrder,
		},
		component.Viewshed{Radius: fovRadius, Dirty: true},
		component.Actor{Speed: PlayerSpeed},
		component.CombatStats{MaxHP: PlayerMaxHP, HP: PlayerMaxHP, Power: PlayerPower, Defense: PlayerDefense},
		inv,
		component.TagPlayer{},
	)
}

// NewMonster creates a monster from a template at pos.
func NewMonster(w *ecs.World, tmpl content.MonsterTemplate, pos component.Position) ecs.EntityID {
	return w.Spawn(
		pos,
		component.Renderable{
			Glyph:       tmpl.Glyph,
			FGColor:     tmpl.Color,
			BGColor:     tcell.ColorBlack,
			RenderOrder: monsterOrder,
		},
		component.Monster{Name: tmpl.Name},
		component.Brain{WanderChance: tmpl.WanderChance},
		component.CombatStats{MaxHP: tmpl.HP, HP: tmpl.HP, Power: tmpl.Power, Defense: tmpl.Defense},
		component.TagMonster{},
	)
}
