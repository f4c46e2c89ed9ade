package system

import (
	"github.com/zyedidia/generic/mapset"

	"rainbow-rogue/internal/component"
	"rainbow-rogue/internal/ecs"
	"rainbow-rogue/internal/gamemap"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// SightMap is what shadowcasting needs from a map.
type SightMap interface {
	InBounds(gamemap.Point) bool
	BlocksSight(gamemap.Point) bool
}

// RunFOV recomputes every dirty viewshed on the active layer and folds the
// newly visible points into its remembered list.
func RunFOV(w *ecs.World, ctx *Context) {
	for _, id := range w.Query(component.CViewshed, component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		vs := w.Get(id, component.CViewshed).(component.Viewshed)
		if !vs.Dirty || !pos.On(ctx.Floor, ctx.Plane) {
			continue
		}

		vs.Visible = ComputeFOV(ctx, pos.Point(), vs.Radius)

		known := mapset.New[gamemap.Point]()
		for _, pt := range vs.Remembered {
			known.Put(pt)
		}
		remembered := append([]gamemap.Point(nil), vs.Remembered...)
		for _, pt := range vs.Visible {
			if !known.Has(pt) {
				known.Put(pt)
				remembered = append(remembered, pt)
			}
		}
		vs.Remembered = remembered
		vs.Dirty = false
		w.Add(id, vs)
	}
}

// ComputeFOV runs recursive shadowcasting from origin and returns every
// in-bounds point within radius that is visible, origin first. Each point
// appears once.
func ComputeFOV(m SightMap, origin gamemap.Point, radius int) []gamemap.Point {
	fov := &fovScan{m: m, seen: mapset.New[gamemap.Point](), radius: radius}
	fov.light(origin)
	for _, o := range octants {
		fov.castLight(origin.X, origin.Y, 1, 1.0, 0.0, o[0], o[1], o[2], o[3])
	}
	return fov.points
}

type fovScan struct {
	m      SightMap
	seen   mapset.Set[gamemap.Point]
	points []gamemap.Point
	radius int
}

func (f *fovScan) light(pt gamemap.Point) {
	if !f.m.InBounds(pt) || f.seen.Has(pt) {
		return
	}
	f.seen.Put(pt)
	f.points = append(f.points, pt)
}

// castLight casts light for one octant.
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep (the row coordinate)
//   - dx sweeps from -j to 0 (the column coordinate within the row)
//   - lSlope = (dx - 0.5) / (dy + 0.5)   rSlope = (dx + 0.5) / (dy - 0.5)
func (f *fovScan) castLight(cx, cy, row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := f.radius * f.radius
	newStart := start

	for j := row; j <= f.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			pt := gamemap.Point{X: cx + dx*xx + dy*xy, Y: cy + dx*yx + dy*yy}

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq {
				f.light(pt)
			}

			opaque := f.m.BlocksSight(pt)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < f.radius {
				blocked = true
				f.castLight(cx, cy, j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
