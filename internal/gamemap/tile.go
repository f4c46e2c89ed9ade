package gamemap

import "github.com/gdamore/tcell/v2"

// TileKind is the semantic tag of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileStairsUp
	TileStairsDown
)

var wallColor = tcell.NewRGBColor(90, 90, 90)

// Tile holds the look and physics of one map cell. Revealed only ever goes
// from false to true.
type Tile struct {
	Glyph       rune
	FG, BG      tcell.Color
	Kind        TileKind
	BlocksMove  bool
	BlocksSight bool
	Revealed    bool
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Glyph: '#', FG: wallColor, BG: tcell.ColorBlack, Kind: TileWall, BlocksMove: true, BlocksSight: true}
}

// MakeFloor returns a passable floor tile tinted for plane p.
func MakeFloor(p Plane) Tile {
	return Tile{Glyph: '.', FG: p.Color(), BG: tcell.ColorBlack, Kind: TileFloor}
}

// MakeStairsUp returns an upward staircase tile.
func MakeStairsUp(p Plane) Tile {
	return Tile{Glyph: '<', FG: p.Color(), BG: tcell.ColorBlack, Kind: TileStairsUp}
}

// MakeStairsDown returns a downward staircase tile.
func MakeStairsDown(p Plane) Tile {
	return Tile{Glyph: '>', FG: p.Color(), BG: tcell.ColorBlack, Kind: TileStairsDown}
}
