// Package generate builds floor substrates: rooms joined by L-shaped
// corridors with stair anchors at the first and last room.
package generate

import (
	"math/rand"

	"rainbow-rogue/internal/gamemap"
)

// Config drives substrate generation for one floor.
type Config struct {
	Width, Height int
	MaxRooms      int
	// Room sizes are drawn from [Min, Max).
	MinRoomW, MaxRoomW int
	MinRoomH, MaxRoomH int
	Rand               *rand.Rand
}

// DefaultConfig returns the standard room budget for a width×height floor.
func DefaultConfig(width, height int, seed int64) *Config {
	return &Config{
		Width:    width,
		Height:   height,
		MaxRooms: 24,
		MinRoomW: 6,
		MaxRoomW: 14,
		MinRoomH: 5,
		MaxRoomH: 10,
		Rand:     rand.New(rand.NewSource(seed)),
	}
}

// between returns a value in [lo, hi). hi must exceed lo.
func between(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo)
}

// Substrate places up to cfg.MaxRooms non-overlapping rooms, each joined to
// the previously placed one. The first room holds the spawn and the up
// stairs; the last holds the down stairs. When no room fits, the
// deterministic Fallback layout is returned and fallback reports true.
func Substrate(cfg *Config) (s *gamemap.Substrate, fallback bool) {
	s = gamemap.NewSubstrate(cfg.Width, cfg.Height)

	for range cfg.MaxRooms {
		w := between(cfg.Rand, cfg.MinRoomW, cfg.MaxRoomW)
		h := between(cfg.Rand, cfg.MinRoomH, cfg.MaxRoomH)
		if w >= cfg.Width-4 || h >= cfg.Height-4 {
			continue
		}

		xMax := cfg.Width - w - 2
		yMax := cfg.Height - h - 2
		if xMax <= 2 || yMax <= 4 {
			continue
		}

		room := gamemap.RectWithSize(between(cfg.Rand, 2, xMax), between(cfg.Rand, 4, yMax), w, h)
		if overlapsAny(s.Rooms, room) {
			continue
		}

		center := room.Center()
		if n := len(s.Rooms); n > 0 {
			s.Corridors = append(s.Corridors, corridorPath(s.Rooms[n-1].Center(), center))
		} else {
			s.Spawn = center
			s.StairsUp = []gamemap.Point{center}
		}
		s.Rooms = append(s.Rooms, room)
	}

	if len(s.Rooms) == 0 {
		return Fallback(cfg.Width, cfg.Height), true
	}
	s.StairsDown = []gamemap.Point{s.Rooms[len(s.Rooms)-1].Center()}
	return s, false
}

func overlapsAny(rooms []gamemap.Rect, r gamemap.Rect) bool {
	for _, other := range rooms {
		if other.Intersects(r) {
			return true
		}
	}
	return false
}

// Fallback lays out a row of fixed-size rooms joined in sequence. It uses
// no randomness and always yields at least one room, shrinking it to fit
// small maps.
func Fallback(width, height int) *gamemap.Substrate {
	const roomW, roomH, gap = 12, 8, 3
	s := gamemap.NewSubstrate(width, height)

	h := min(roomH, max(1, height-4))
	y := max(1, min(8, height-h-2))

	for x := 2; x+roomW < width-2; x += roomW + gap {
		s.Rooms = append(s.Rooms, gamemap.RectWithSize(x, y, roomW, h))
	}
	if len(s.Rooms) == 0 {
		s.Rooms = append(s.Rooms, gamemap.RectWithSize(min(2, width-1), y, max(1, width-4), h))
	}

	s.Spawn = s.Rooms[0].Center()
	s.StairsUp = []gamemap.Point{s.Spawn}
	s.StairsDown = []gamemap.Point{s.Rooms[len(s.Rooms)-1].Center()}
	for i := 1; i < len(s.Rooms); i++ {
		s.Corridors = append(s.Corridors, corridorPath(s.Rooms[i-1].Center(), s.Rooms[i].Center()))
	}
	return s
}
