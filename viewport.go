package grip

// Viewport maps client (screen) coordinates to page coordinates. The
// document scroll offset is the only transform: page = client + scroll.
type Viewport struct {
	ScrollX, ScrollY float64
	Width, Height    float64
}

// ClientToPage converts client coordinates to page coordinates.
func (v *Viewport) ClientToPage(cx, cy float64) (px, py float64) {
	return cx + v.ScrollX, cy + v.ScrollY
}

// PageToClient converts page coordinates to client coordinates.
func (v *Viewport) PageToClient(px, py float64) (cx, cy float64) {
	return px - v.ScrollX, py - v.ScrollY
}

// ScrollTo sets the document scroll offset.
func (v *Viewport) ScrollTo(x, y float64) {
	v.ScrollX = x
	v.ScrollY = y
}

// VisibleBounds returns the page-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}
