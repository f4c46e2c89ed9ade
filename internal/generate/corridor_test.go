package generate

import (
	"testing"

	"rainbow-rogue/internal/gamemap"
)

func TestCorridorPathHorizontalFirst(t *testing.T) {
	path := corridorPath(gamemap.Point{X: 1, Y: 1}, gamemap.Point{X: 3, Y: 3})
	want := []gamemap.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}}
	if len(path) != len(want) {
		t.Fatalf("path length %d, want %d: %v", len(path), len(want), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d]=%v, want %v", i, path[i], want[i])
		}
	}
}

func TestCorridorPathReversed(t *testing.T) {
	path := corridorPath(gamemap.Point{X: 8, Y: 6}, gamemap.Point{X: 5, Y: 2})
	if path[0] != (gamemap.Point{X: 8, Y: 6}) {
		t.Errorf("path should start at the origin, got %v", path[0])
	}
	if last := path[len(path)-1]; last != (gamemap.Point{X: 5, Y: 2}) {
		t.Errorf("path should end at the target, got %v", last)
	}
	// 3 horizontal steps + 4 vertical steps + origin.
	if len(path) != 8 {
		t.Errorf("path length %d, want 8", len(path))
	}
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("step %d from %v to %v is not a unit step", i, path[i-1], path[i])
		}
	}
}

func TestCorridorPathSamePoint(t *testing.T) {
	path := corridorPath(gamemap.Point{X: 4, Y: 4}, gamemap.Point{X: 4, Y: 4})
	if len(path) != 1 {
		t.Errorf("expected single-point path, got %v", path)
	}
}
