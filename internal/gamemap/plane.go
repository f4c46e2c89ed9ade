package gamemap

import "github.com/gdamore/tcell/v2"

// Plane is one of the seven parallel variants of every floor. The planes
// form a cyclic spectrum from red to violet.
type Plane uint8

const (
	PlaneRed Plane = iota
	PlaneOrange
	PlaneYellow
	PlaneGreen
	PlaneBlue
	PlaneIndigo
	PlaneViolet
)

// PlaneCount is the number of planes in the spectrum.
const PlaneCount = 7

// Spectrum lists every plane in cycle order.
var Spectrum = [PlaneCount]Plane{
	PlaneRed, PlaneOrange, PlaneYellow, PlaneGreen, PlaneBlue, PlaneIndigo, PlaneViolet,
}

var planeNames = [PlaneCount]string{"Red", "Orange", "Yellow", "Green", "Blue", "Indigo", "Violet"}

var planeColors = [PlaneCount]tcell.Color{
	tcell.NewRGBColor(255, 95, 86),
	tcell.NewRGBColor(255, 170, 64),
	tcell.NewRGBColor(241, 241, 87),
	tcell.NewRGBColor(126, 211, 33),
	tcell.NewRGBColor(96, 165, 255),
	tcell.NewRGBColor(120, 98, 240),
	tcell.NewRGBColor(193, 126, 255),
}

var planeRules = [PlaneCount]string{
	"Heat blooms amplify melee damage.",
	"Chemical clouds respond to wind tunnels.",
	"Lens-prisms extend FOV and detect traps.",
	"Regrowth tiles slowly mend allies.",
	"Stillwater grants crit bonuses to ranged.",
	"Mindstorms favor teleport talent rolls.",
	"Curses thread through unseen resonance.",
}

// Index returns the plane's position in the spectrum. Out-of-range values
// collapse to red.
func (p Plane) Index() int {
	if int(p) >= PlaneCount {
		return 0
	}
	return int(p)
}

// Valid reports whether p is one of the seven planes.
func (p Plane) Valid() bool { return int(p) < PlaneCount }

// Cycle steps delta places around the spectrum, wrapping in both directions.
func (p Plane) Cycle(delta int) Plane {
	next := (p.Index() + delta) % PlaneCount
	if next < 0 {
		next += PlaneCount
	}
	return Spectrum[next]
}

func (p Plane) String() string { return planeNames[p.Index()] }

// Color is the display tint used for the plane's floors and the player.
func (p Plane) Color() tcell.Color { return planeColors[p.Index()] }

// Rule is the plane's flavor rule text.
func (p Plane) Rule() string { return planeRules[p.Index()] }

// ParsePlane maps a case-sensitive plane name back to its Plane.
func ParsePlane(name string) (Plane, bool) {
	for i, n := range planeNames {
		if n == name {
			return Spectrum[i], true
		}
	}
	return PlaneRed, false
}
