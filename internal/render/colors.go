package render

import "github.com/gdamore/tcell/v2"

// Palette used by the HUD and map.
var (
	ColorBorder      = tcell.ColorGray
	ColorLogBorder   = tcell.ColorDarkGray
	ColorTitle       = tcell.ColorWhite
	ColorTurn        = tcell.ColorLightBlue
	ColorRingActive  = tcell.ColorLightGreen
	ColorRingIdle    = tcell.ColorDarkGray
	ColorRemembered  = tcell.ColorDarkGray
	ColorBackground  = tcell.ColorBlack
	ColorDeathBanner = tcell.ColorRed
	ColorStats       = tcell.ColorLightCyan
)

// HPColor picks the vitality readout color for an hp ratio.
func HPColor(ratio float64) tcell.Color {
	switch {
	case ratio <= 0.3:
		return tcell.ColorOrange
	case ratio <= 0.6:
		return tcell.NewRGBColor(255, 120, 120)
	}
	return tcell.ColorRed
}
