package generate

import "rainbow-rogue/internal/gamemap"

// corridorPath traces an L-shaped tunnel from start to end: a horizontal run
// along start's row, then a vertical run along end's column. Both endpoints
// are included and no point repeats.
func corridorPath(start, end gamemap.Point) []gamemap.Point {
	path := traceH(nil, start.X, end.X, start.Y)
	return traceV(path, start.Y, end.Y, end.X)
}

func traceH(path []gamemap.Point, x1, x2, y int) []gamemap.Point {
	step := 1
	if x2 < x1 {
		step = -1
	}
	for x := x1; ; x += step {
		path = append(path, gamemap.Point{X: x, Y: y})
		if x == x2 {
			return path
		}
	}
}

// traceV skips y1 itself, which traceH already emitted as the corner.
func traceV(path []gamemap.Point, y1, y2, x int) []gamemap.Point {
	step := 1
	if y2 < y1 {
		step = -1
	}
	for y := y1; y != y2; {
		y += step
		path = append(path, gamemap.Point{X: x, Y: y})
	}
	return path
}
