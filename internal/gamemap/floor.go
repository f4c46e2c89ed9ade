package gamemap

// Floor owns one substrate and the seven plane layers painted from it.
type Floor struct {
	ID        FloorID
	Seed      int64
	Substrate *Substrate
	Layers    [PlaneCount]*Layer
}

// NewFloor paints every plane's layer from s.
func NewFloor(id FloorID, seed int64, s *Substrate) *Floor {
	f := &Floor{ID: id, Seed: seed, Substrate: s}
	for i, p := range Spectrum {
		f.Layers[i] = NewLayer(p, s)
	}
	return f
}

// Layer returns the layer for plane p.
func (f *Floor) Layer(p Plane) *Layer {
	return f.Layers[p.Index()]
}

// SpawnPoint is where a player arriving from above appears.
func (f *Floor) SpawnPoint() Point {
	return f.Substrate.Spawn
}

// DownAnchor is where a player arriving from below appears: the first
// stair-down, or the spawn point when the floor has none.
func (f *Floor) DownAnchor() Point {
	if len(f.Substrate.StairsDown) > 0 {
		return f.Substrate.StairsDown[0]
	}
	return f.Substrate.Spawn
}
