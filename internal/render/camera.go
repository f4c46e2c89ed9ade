package render

// Camera translates between map coordinates and screen coordinates inside
// the map viewport.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int
	ViewHeight int
}

// NewCamera creates a camera centered on (cx, cy).
func NewCamera(cx, cy, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Resize changes the viewport dimensions without moving the center.
func (c *Camera) Resize(viewW, viewH int) {
	cx, cy := c.OffsetX+c.ViewWidth/2, c.OffsetY+c.ViewHeight/2
	c.ViewWidth, c.ViewHeight = viewW, viewH
	c.Center(cx, cy)
}

// Center repositions the camera so that map position (cx, cy) is in the
// middle of the viewport.
func (c *Camera) Center(cx, cy int) {
	c.OffsetX = cx - c.ViewWidth/2
	c.OffsetY = cy - c.ViewHeight/2
}

// Fit centers on (cx, cy) but keeps a map of mapW×mapH flush with the
// viewport edges when it is larger than the viewport, and pinned to the
// origin when it is smaller.
func (c *Camera) Fit(cx, cy, mapW, mapH int) {
	c.Center(cx, cy)
	c.OffsetX = clampOffset(c.OffsetX, mapW, c.ViewWidth)
	c.OffsetY = clampOffset(c.OffsetY, mapH, c.ViewHeight)
}

func clampOffset(off, mapSize, view int) int {
	if mapSize <= view {
		return 0
	}
	return max(0, min(off, mapSize-view))
}

// WorldToScreen converts map (wx, wy) to viewport (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = wx - c.OffsetX
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts viewport (sx, sy) to map coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx + c.OffsetX, sy + c.OffsetY
}
