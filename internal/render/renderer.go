// Package render draws game frames onto a tcell screen.
package render

import (
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/zyedidia/generic/mapset"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/gamemap"
)

// Screen layout.
const (
	HUDRows      = 7
	LogRows      = MaxLogLines + 3
	MapOriginX   = 2
	MaxLogLines  = 5
	MaxQuickSlot = 5
)

// Sprite is one renderable entity at a map point.
type Sprite struct {
	Point      gamemap.Point
	Renderable component.Renderable
}

// Frame is an immutable snapshot of everything one redraw needs.
type Frame struct {
	Turn      uint64
	Floor     gamemap.FloorID
	Plane     gamemap.Plane
	Player    gamemap.Point
	Layer     *gamemap.Layer
	Visible   mapset.Set[gamemap.Point]
	Sprites   []Sprite
	HP, MaxHP int
	HPRatio   float64
	Slots     []component.InventorySlot
	Log       []string
	Dead      bool
	Runs      int
	BestDepth int
}

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, max(0, w-MapOriginX*2), max(0, h-HUDRows-LogRows)),
	}
}

// Draw clears the screen, renders f and shows the result.
func (r *Renderer) Draw(f Frame) {
	w, h := r.screen.Size()
	r.camera.Resize(max(0, w-MapOriginX*2), max(0, h-HUDRows-LogRows))

	r.screen.Clear()
	r.drawHUD(f, w)
	if f.Layer != nil {
		r.camera.Fit(f.Player.X, f.Player.Y, f.Layer.Width, f.Layer.Height)
		r.drawMap(f)
		r.drawSprites(f)
	}
	r.drawLog(f, w, h)
	r.screen.Show()
}

// drawMap renders visible tiles in their layer colors and remembered tiles
// dimmed. Unrevealed tiles stay blank.
func (r *Renderer) drawMap(f Frame) {
	for y := 0; y < f.Layer.Height; y++ {
		for x := 0; x < f.Layer.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			pt := gamemap.Point{X: x, Y: y}
			tile, _ := f.Layer.TileAt(pt)
			switch {
			case f.Visible.Has(pt):
				r.put(sx, sy, tile.Glyph, tcell.StyleDefault.Foreground(tile.FG).Background(tile.BG))
			case tile.Revealed:
				r.put(sx, sy, tile.Glyph, tcell.StyleDefault.Foreground(ColorRemembered).Background(ColorBackground))
			}
		}
	}
}

// drawSprites renders entities standing on visible tiles, lowest render
// order first.
func (r *Renderer) drawSprites(f Frame) {
	sprites := slices.Clone(f.Sprites)
	slices.SortStableFunc(sprites, func(a, b Sprite) int {
		return a.Renderable.RenderOrder - b.Renderable.RenderOrder
	})
	for _, s := range sprites {
		if !f.Visible.Has(s.Point) {
			continue
		}
		sx, sy, onScreen := r.camera.WorldToScreen(s.Point.X, s.Point.Y)
		if !onScreen {
			continue
		}
		bg := s.Renderable.BGColor
		if bg == tcell.ColorDefault {
			bg = ColorBackground
		}
		r.put(sx, sy, s.Renderable.Glyph, tcell.StyleDefault.Foreground(s.Renderable.FGColor).Background(bg))
	}
}

func (r *Renderer) put(sx, sy int, glyph rune, style tcell.Style) {
	r.screen.SetContent(MapOriginX+sx, HUDRows+sy, glyph, nil, style)
}

// drawText writes text at (x, y) clipped to maxWidth columns and returns the
// number of columns used.
func (r *Renderer) drawText(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	text = runewidth.Truncate(text, maxWidth, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
	return col - x
}

func (r *Renderer) drawBox(x0, y0, x1, y1 int, color tcell.Color) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	style := tcell.StyleDefault.Foreground(color).Background(ColorBackground)
	for x := x0 + 1; x < x1; x++ {
		r.screen.SetContent(x, y0, '─', nil, style)
		r.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		r.screen.SetContent(x0, y, '│', nil, style)
		r.screen.SetContent(x1, y, '│', nil, style)
	}
	r.screen.SetContent(x0, y0, '┌', nil, style)
	r.screen.SetContent(x1, y0, '┐', nil, style)
	r.screen.SetContent(x0, y1, '└', nil, style)
	r.screen.SetContent(x1, y1, '┘', nil, style)
}
