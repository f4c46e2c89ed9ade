// Package content loads monster templates and starter consumables from Lua
// data files.
package content

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"rainbow-rogue/assets"
	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/gamemap"
)

// MonsterTemplate describes one kind of monster native to a plane.
type MonsterTemplate struct {
	Name         string
	Glyph        rune
	Color        tcell.Color
	WanderChance float64
	HP           int
	Power        int
	Defense      int
}

// ConsumableTemplate describes one starter consumable.
type ConsumableTemplate struct {
	Name        string
	Description string
	Color       tcell.Color
	Uses        int
	Effect      component.Effect
}

// Slot turns the template into a fresh inventory slot.
func (c ConsumableTemplate) Slot() component.InventorySlot {
	return component.InventorySlot{
		Name:          c.Name,
		Description:   c.Description,
		UsesRemaining: c.Uses,
		Effect:        c.Effect,
		Color:         c.Color,
	}
}

// Catalog is the immutable set of templates, grouped by plane.
type Catalog struct {
	monsters [gamemap.PlaneCount][]MonsterTemplate
	starters [gamemap.PlaneCount][]ConsumableTemplate
}

// Monsters returns the templates native to plane p.
func (c *Catalog) Monsters(p gamemap.Plane) []MonsterTemplate {
	return c.monsters[p.Index()]
}

// Starters returns the consumables a player attuned to p begins with.
func (c *Catalog) Starters(p gamemap.Plane) []ConsumableTemplate {
	return c.starters[p.Index()]
}

// Default loads the embedded content file.
func Default() (*Catalog, error) {
	cat, err := Load("content.lua", assets.ContentLua)
	if err != nil {
		return nil, fmt.Errorf("loading embedded content: %w", err)
	}
	return cat, nil
}

func (c *Catalog) validate() error {
	for _, p := range gamemap.Spectrum {
		if len(c.Monsters(p)) == 0 {
			return fmt.Errorf("plane %s has no monsters", p)
		}
		for _, m := range c.Monsters(p) {
			if m.HP <= 0 {
				return fmt.Errorf("monster %q: hp must be positive", m.Name)
			}
			if m.WanderChance < 0 || m.WanderChance > 1 {
				return fmt.Errorf("monster %q: wander %v outside [0,1]", m.Name, m.WanderChance)
			}
		}
		for _, s := range c.Starters(p) {
			if s.Uses <= 0 {
				return fmt.Errorf("starter %q: uses must be positive", s.Name)
			}
		}
	}
	return nil
}
