package gamemap

// Layer is the tile grid of one (floor, plane) pair.
type Layer struct {
	Plane         Plane
	Width, Height int
	Tiles         []Tile
}

// NewEmptyLayer creates a layer filled with walls.
func NewEmptyLayer(p Plane, width, height int) *Layer {
	tiles := make([]Tile, width*height)
	for i := range tiles {
		tiles[i] = MakeWall()
	}
	return &Layer{Plane: p, Width: width, Height: height, Tiles: tiles}
}

// NewLayer paints the substrate's rooms, corridors and stairs for plane p.
// Geometry depends only on the substrate; p only chooses the tint.
func NewLayer(p Plane, s *Substrate) *Layer {
	l := NewEmptyLayer(p, s.Width, s.Height)
	for _, room := range s.Rooms {
		room.Each(func(pt Point) { l.Set(pt, MakeFloor(p)) })
	}
	for _, corridor := range s.Corridors {
		for _, pt := range corridor {
			l.Set(pt, MakeFloor(p))
		}
	}
	for _, pt := range s.StairsUp {
		l.Set(pt, MakeStairsUp(p))
	}
	for _, pt := range s.StairsDown {
		l.Set(pt, MakeStairsDown(p))
	}
	return l
}

// InBounds reports whether pt is within the layer.
func (l *Layer) InBounds(pt Point) bool {
	return pt.X >= 0 && pt.X < l.Width && pt.Y >= 0 && pt.Y < l.Height
}

func (l *Layer) index(pt Point) (int, bool) {
	if !l.InBounds(pt) {
		return 0, false
	}
	return pt.Y*l.Width + pt.X, true
}

// TileAt returns a copy of the tile at pt.
func (l *Layer) TileAt(pt Point) (Tile, bool) {
	i, ok := l.index(pt)
	if !ok {
		return Tile{}, false
	}
	return l.Tiles[i], true
}

// Set replaces the tile at pt. Out-of-bounds writes are ignored.
func (l *Layer) Set(pt Point, t Tile) {
	if i, ok := l.index(pt); ok {
		l.Tiles[i] = t
	}
}

// IsWalkable is false for walls and anything out of bounds.
func (l *Layer) IsWalkable(pt Point) bool {
	i, ok := l.index(pt)
	return ok && !l.Tiles[i].BlocksMove
}

// BlocksSight is true for walls and anything out of bounds.
func (l *Layer) BlocksSight(pt Point) bool {
	i, ok := l.index(pt)
	return !ok || l.Tiles[i].BlocksSight
}

// Reveal marks pt as seen. Calling it again, or out of bounds, is a no-op.
func (l *Layer) Reveal(pt Point) {
	if i, ok := l.index(pt); ok {
		l.Tiles[i].Revealed = true
	}
}

// WalkablePoints lists every walkable point in row-major order.
func (l *Layer) WalkablePoints() []Point {
	var pts []Point
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			pt := Point{X: x, Y: y}
			if l.IsWalkable(pt) {
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

// FirstWalkable returns the first walkable point in row-major order, or the
// origin when the layer has none.
func (l *Layer) FirstWalkable() Point {
	for i, t := range l.Tiles {
		if !t.BlocksMove {
			return Point{X: i % l.Width, Y: i / l.Width}
		}
	}
	return Point{}
}

// Clone returns a deep copy safe to hand to rendering.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Tiles = append([]Tile(nil), l.Tiles...)
	return &c
}
