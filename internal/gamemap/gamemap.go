package gamemap

import "fmt"

// FloorID identifies one dungeon floor. Floor 0 is the entry floor.
type FloorID uint32

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// Rect is an axis-aligned rectangle used for rooms. X1, Y1 are inclusive;
// X2, Y2 are exclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// RectWithSize builds a Rect from its top-left corner and size.
func RectWithSize(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects reports whether r overlaps or touches other. Rooms that pass
// this check keep at least one wall tile between them.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// Each calls fn for every point in r, row by row.
func (r Rect) Each(fn func(Point)) {
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			fn(Point{X: x, Y: y})
		}
	}
}
