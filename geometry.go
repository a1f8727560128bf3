package grip

import "math"

// dragLimit bounds the helper's margin box in page coordinates.
type dragLimit struct {
	left, top     float64
	right, bottom float64
	enabled       bool
}

// dragGeometry is sampled once when a drag starts and never updated while
// the session runs. Page-space clamping and parent-relative placement both
// derive from it, so the two can never drift apart.
type dragGeometry struct {
	offset       Rect  // source border box in page space
	parentOrigin Vec2  // content origin of the helper's offset parent
	margin       Edges // helper margin
	helperSize   Vec2  // helper border-box size
	areaBorder   Edges
	areaPadding  Edges
	limit        dragLimit
	diff         Vec2 // pointer minus helper top-left
}

// captureGeometry snapshots everything a drag needs. pointer is the
// position at the threshold crossing; area may be nil.
func captureGeometry(src, helper, area *Node, pointer Point, cursorAt *Vec2) dragGeometry {
	g := dragGeometry{
		offset:     src.PageRect(),
		margin:     helper.Margin,
		helperSize: Vec2{X: helper.Width, Y: helper.Height},
	}
	if helper.Parent != nil {
		g.parentOrigin = helper.Parent.contentOrigin()
	}
	if cursorAt != nil {
		g.diff = *cursorAt
	} else {
		g.diff = Vec2{X: pointer.PageX - g.offset.X, Y: pointer.PageY - g.offset.Y}
	}
	if area != nil {
		g.areaBorder = area.Border
		g.areaPadding = area.Padding
		g.limit = computeDragLimit(area)
	}
	return g
}

// computeDragLimit returns the content edges of area in page space.
func computeDragLimit(area *Node) dragLimit {
	r := area.PageRect()
	return dragLimit{
		left:    r.X + area.Border.Left + area.Padding.Left,
		top:     r.Y + area.Border.Top + area.Padding.Top,
		right:   r.X + area.ScrollWidth() - (area.Border.Right + area.Padding.Right),
		bottom:  r.Y + area.ScrollHeight() - (area.Border.Bottom + area.Padding.Bottom),
		enabled: true,
	}
}

// clamp keeps the helper's margin box inside the limit. left/top are the
// helper's border-box page position. When the helper is larger than the
// area the top-left edge wins.
func (g *dragGeometry) clamp(left, top float64) (float64, float64) {
	if !g.limit.enabled {
		return left, top
	}
	minX := g.limit.left + g.margin.Left
	maxX := g.limit.right - g.helperSize.X - g.margin.Right
	minY := g.limit.top + g.margin.Top
	maxY := g.limit.bottom - g.helperSize.Y - g.margin.Bottom
	return clampRange(left, minX, maxX), clampRange(top, minY, maxY)
}

// local converts a border-box page position into X/Y for the helper.
func (g *dragGeometry) local(left, top float64) (float64, float64) {
	return left - g.parentOrigin.X - g.margin.Left, top - g.parentOrigin.Y - g.margin.Top
}

func clampRange(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}
