package gamemap

// Substrate is the room/corridor/stair skeleton shared by all planes of a
// floor. It carries geometry only; tiles are painted per plane by NewLayer.
type Substrate struct {
	Width, Height int
	Rooms         []Rect
	Corridors     [][]Point
	StairsUp      []Point
	StairsDown    []Point
	Spawn         Point
}

// NewSubstrate returns an empty substrate whose spawn is the map center.
func NewSubstrate(width, height int) *Substrate {
	return &Substrate{
		Width:  width,
		Height: height,
		Spawn:  Point{X: width / 2, Y: height / 2},
	}
}
