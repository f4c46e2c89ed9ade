package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"rainbow-rogue/internal/gamemap"
)

// ringSpacing is the column distance between plane names on the HUD ring.
const ringSpacing = 10

// drawHUD renders the boxed status panel: title, vitality, the spectrum
// ring and the consumable quickbar.
func (r *Renderer) drawHUD(f Frame, width int) {
	r.drawBox(0, 0, width-1, HUDRows-1, ColorBorder)
	inner := width - 4

	title := fmt.Sprintf("Spectrum HUD · Floor %d · Turn %d", f.Floor, f.Turn)
	r.drawText(2, 1, inner, title, tcell.StyleDefault.Foreground(ColorTitle))

	vitality := fmt.Sprintf("HP %d/%d", f.HP, f.MaxHP)
	used := r.drawText(2, 2, inner, vitality, tcell.StyleDefault.Foreground(HPColor(f.HPRatio)))
	if f.Dead {
		r.drawText(2+used+2, 2, inner-used-2, "SPECTRUM SHATTERED · r restart · q quit",
			tcell.StyleDefault.Foreground(ColorDeathBanner).Bold(true))
	}

	stats := fmt.Sprintf("Runs %d · Best depth %d", f.Runs, f.BestDepth)
	if sw := runewidth.StringWidth(stats); sw < inner-used-2 && !f.Dead {
		r.drawText(width-2-sw, 2, sw, stats, tcell.StyleDefault.Foreground(ColorStats))
	}

	r.drawRing(f.Plane, width)
	r.drawQuickbar(f, width)
}

// drawRing lists every plane, marking the active one.
func (r *Renderer) drawRing(active gamemap.Plane, width int) {
	for idx, p := range gamemap.Spectrum {
		x := 2 + idx*ringSpacing
		if x >= width-2 {
			break
		}
		color, glyph := ColorRingIdle, '·'
		if p == active {
			color, glyph = ColorRingActive, '*'
		}
		style := tcell.StyleDefault.Foreground(color)
		r.screen.SetContent(x, 3, glyph, nil, style)
		r.drawText(x+2, 3, min(ringSpacing-3, width-2-x-2), p.String(), style)
	}
}

// drawQuickbar shows up to MaxQuickSlot inventory slots as "[n] Name (xU)".
func (r *Renderer) drawQuickbar(f Frame, width int) {
	x := 2
	for i, slot := range f.Slots {
		if i >= MaxQuickSlot || x >= width-2 {
			break
		}
		label := fmt.Sprintf("[%d] %s (x%d)", i+1, slot.Name, slot.UsesRemaining)
		x += r.drawText(x, 5, width-2-x, label, tcell.StyleDefault.Foreground(slot.Color)) + 2
	}
}

// drawLog renders the newest log entries in a box along the bottom edge.
func (r *Renderer) drawLog(f Frame, width, height int) {
	lines := min(len(f.Log), MaxLogLines)
	top := max(HUDRows, height-LogRows)
	r.drawBox(0, top, width-1, top+lines+2, ColorLogBorder)
	r.drawText(2, top+1, width-4, "Event Log", tcell.StyleDefault.Foreground(ColorTitle))
	for row, entry := range f.Log[:lines] {
		r.drawText(2, top+2+row, width-4, entry, tcell.StyleDefault)
	}
}
