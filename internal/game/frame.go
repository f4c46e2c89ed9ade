package game

import (
	"github.com/zyedidia/generic/mapset"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/gamemap"
	"rainbow-rogue/internal/render"
)

// Frame snapshots the session for the renderer. Nothing in it aliases
// session state.
func (s *Session) Frame() render.Frame {
	f := render.Frame{
		Turn:      s.sim.Turn(),
		Floor:     s.floor,
		Plane:     s.plane,
		Player:    s.sim.PlayerPoint(),
		Visible:   mapset.New[gamemap.Point](),
		HPRatio:   s.hpRatio,
		Slots:     s.sim.PlayerInventory(),
		Log:       s.Log(),
		Dead:      s.dead,
		Runs:      s.summary.Runs,
		BestDepth: max(s.summary.BestDepth, s.bestDepth),
	}
	if layer, ok := s.dungeon.Layer(s.floor, s.plane); ok {
		f.Layer = layer.Clone()
	}
	s.visible.Each(func(pt gamemap.Point) { f.Visible.Put(pt) })
	if stats, ok := s.sim.PlayerStats(); ok {
		f.HP, f.MaxHP = stats.HP, stats.MaxHP
	}
	s.sim.EachRenderable(s.floor, s.plane, true, func(pt gamemap.Point, r component.Renderable) {
		f.Sprites = append(f.Sprites, render.Sprite{Point: pt, Renderable: r})
	})
	return f
}
