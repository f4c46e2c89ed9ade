// Package dungeon owns the floors of one run. Floors are generated lazily
// the first time they are requested and cached for the rest of the run.
package dungeon

import (
	"log/slog"

	"rainbow-rogue/internal/gamemap"
	"rainbow-rogue/internal/generate"
)

// Dungeon maps floor ids to generated floors.
type Dungeon struct {
	width, height int
	seed          int64
	floors        map[gamemap.FloorID]*gamemap.Floor
	logger        *slog.Logger
}

// New creates an empty dungeon whose floors will be width×height and derived
// from seed. A nil logger discards output.
func New(width, height int, seed int64, logger *slog.Logger) *Dungeon {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dungeon{
		width:  width,
		height: height,
		seed:   seed,
		floors: make(map[gamemap.FloorID]*gamemap.Floor),
		logger: logger,
	}
}

// Seed is the run seed every floor seed derives from.
func (d *Dungeon) Seed() int64 { return d.seed }

// Size returns the map dimensions shared by every floor.
func (d *Dungeon) Size() (width, height int) { return d.width, d.height }

// FloorSeed derives the generation seed for floor id. With a zero run seed
// floor n uses seed n+1.
func (d *Dungeon) FloorSeed(id gamemap.FloorID) int64 {
	return d.seed*31 + int64(id) + 1
}

// Ensure returns floor id, generating it on first use. created reports
// whether this call generated it.
func (d *Dungeon) Ensure(id gamemap.FloorID) (f *gamemap.Floor, created bool) {
	if f, ok := d.floors[id]; ok {
		return f, false
	}
	seed := d.FloorSeed(id)
	s, fallback := generate.Substrate(generate.DefaultConfig(d.width, d.height, seed))
	f = gamemap.NewFloor(id, seed, s)
	d.floors[id] = f
	d.logger.Debug("floor generated",
		"floor", id, "seed", seed, "rooms", len(s.Rooms), "fallback", fallback)
	if fallback {
		d.logger.Warn("no rooms placed, using fallback layout", "floor", id, "seed", seed)
	}
	return f, true
}

// Floor returns floor id if it has been generated.
func (d *Dungeon) Floor(id gamemap.FloorID) (*gamemap.Floor, bool) {
	f, ok := d.floors[id]
	return f, ok
}

// Floors reports how many floors have been generated.
func (d *Dungeon) Floors() int { return len(d.floors) }

// Layer returns the (floor, plane) layer if the floor exists.
func (d *Dungeon) Layer(id gamemap.FloorID, p gamemap.Plane) (*gamemap.Layer, bool) {
	f, ok := d.floors[id]
	if !ok {
		return nil, false
	}
	return f.Layer(p), true
}

// IsWalkable is false for missing floors and out-of-bounds points.
func (d *Dungeon) IsWalkable(id gamemap.FloorID, p gamemap.Plane, pt gamemap.Point) bool {
	l, ok := d.Layer(id, p)
	return ok && l.IsWalkable(pt)
}

// BlocksSight is true for missing floors and out-of-bounds points.
func (d *Dungeon) BlocksSight(id gamemap.FloorID, p gamemap.Plane, pt gamemap.Point) bool {
	l, ok := d.Layer(id, p)
	return !ok || l.BlocksSight(pt)
}

// Reveal marks pt seen on the given layer and reports whether it was
// previously unrevealed.
func (d *Dungeon) Reveal(id gamemap.FloorID, p gamemap.Plane, pt gamemap.Point) bool {
	l, ok := d.Layer(id, p)
	if !ok {
		return false
	}
	t, ok := l.TileAt(pt)
	if !ok || t.Revealed {
		return false
	}
	l.Reveal(pt)
	return true
}

// SpawnPoint is where players arriving on floor id appear. Missing floors
// answer (1,1).
func (d *Dungeon) SpawnPoint(id gamemap.FloorID) gamemap.Point {
	if f, ok := d.floors[id]; ok {
		return f.SpawnPoint()
	}
	return gamemap.Point{X: 1, Y: 1}
}

// DownAnchor is where players climbing up to floor id appear.
func (d *Dungeon) DownAnchor(id gamemap.FloorID) gamemap.Point {
	if f, ok := d.floors[id]; ok {
		return f.DownAnchor()
	}
	return gamemap.Point{X: 1, Y: 1}
}
