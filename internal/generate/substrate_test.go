package generate

import (
	"reflect"
	"testing"

	"rainbow-rogue/internal/gamemap"
)

// reachableAll verifies that every walkable tile of l is reachable from the
// spawn point via BFS (flood-fill).
func reachableAll(t *testing.T, l *gamemap.Layer, start gamemap.Point) {
	t.Helper()
	visited := map[gamemap.Point]bool{start: true}
	queue := []gamemap.Point{start}
	dirs := []gamemap.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			next := cur.Add(d.X, d.Y)
			if visited[next] || !l.IsWalkable(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	for _, pt := range l.WalkablePoints() {
		if !visited[pt] {
			t.Errorf("unreachable floor tile at %v", pt)
		}
	}
}

func TestSubstrateDeterministic(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		a, _ := Substrate(DefaultConfig(80, 48, seed))
		b, _ := Substrate(DefaultConfig(80, 48, seed))
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed=%d: substrates differ", seed)
		}
	}
}

func TestSubstrateRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s, _ := Substrate(DefaultConfig(80, 48, seed))
		l := gamemap.NewLayer(gamemap.PlaneRed, s)
		if !l.IsWalkable(s.Spawn) {
			t.Fatalf("seed=%d: spawn %v not walkable", seed, s.Spawn)
		}
		reachableAll(t, l, s.Spawn)
	}
}

func TestSubstrateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s, _ := Substrate(DefaultConfig(80, 48, seed))
		for i, a := range s.Rooms {
			for j, b := range s.Rooms {
				if i != j && a.Intersects(b) {
					t.Errorf("seed=%d: rooms %d and %d overlap", seed, i, j)
				}
			}
		}
	}
}

func TestSubstrateRoomsKeepWallBetween(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s, _ := Substrate(DefaultConfig(80, 48, seed))
		for i, a := range s.Rooms {
			for j, b := range s.Rooms {
				if i == j {
					continue
				}
				a.Each(func(p gamemap.Point) {
					for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
						if b.Contains(p.Add(d[0], d[1])) {
							t.Fatalf("seed=%d: rooms %d and %d touch at %v", seed, i, j, p)
						}
					}
				})
			}
		}
	}
}

func TestSubstrateStairsAnchors(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		s, fallback := Substrate(DefaultConfig(80, 48, seed))
		if fallback {
			t.Fatalf("seed=%d: unexpected fallback on a full-size map", seed)
		}
		if s.Spawn != s.Rooms[0].Center() || len(s.StairsUp) != 1 || s.StairsUp[0] != s.Spawn {
			t.Errorf("seed=%d: spawn/up stairs not at first room center", seed)
		}
		last := s.Rooms[len(s.Rooms)-1].Center()
		if len(s.StairsDown) != 1 || s.StairsDown[0] != last {
			t.Errorf("seed=%d: down stairs not at last room center", seed)
		}
		if len(s.Corridors) != len(s.Rooms)-1 {
			t.Errorf("seed=%d: %d corridors for %d rooms", seed, len(s.Corridors), len(s.Rooms))
		}
	}
}

func TestSubstrateFallsBackWhenNothingFits(t *testing.T) {
	s, fallback := Substrate(DefaultConfig(10, 10, 1))
	if !fallback {
		t.Fatal("expected fallback layout on a tiny map")
	}
	if len(s.Rooms) == 0 {
		t.Fatal("fallback produced no rooms")
	}
	l := gamemap.NewLayer(gamemap.PlaneRed, s)
	if !l.IsWalkable(s.Spawn) {
		t.Errorf("fallback spawn %v not walkable", s.Spawn)
	}
}

func TestFallbackRowOfRooms(t *testing.T) {
	s := Fallback(80, 48)
	// x = 2, 17, 32, 47, 62 while x+12 < 78.
	if len(s.Rooms) != 5 {
		t.Fatalf("expected 5 rooms, got %d", len(s.Rooms))
	}
	if len(s.Corridors) != 4 {
		t.Errorf("expected 4 corridors, got %d", len(s.Corridors))
	}
	if !reflect.DeepEqual(s, Fallback(80, 48)) {
		t.Error("fallback is not deterministic")
	}
	reachableAll(t, gamemap.NewLayer(gamemap.PlaneViolet, s), s.Spawn)
}

func TestFallbackNarrowMap(t *testing.T) {
	for _, size := range [][2]int{{14, 12}, {6, 6}, {3, 3}} {
		s := Fallback(size[0], size[1])
		if len(s.Rooms) != 1 {
			t.Fatalf("%v: expected single room, got %d", size, len(s.Rooms))
		}
		l := gamemap.NewLayer(gamemap.PlaneRed, s)
		if !l.IsWalkable(s.Spawn) {
			t.Errorf("%v: spawn %v not walkable", size, s.Spawn)
		}
	}
}
