package grip

// Page geometry is derived on demand from the parent chain; nothing is
// cached, so reads always see the latest X/Y/scroll values.
//
// Box placement:
//
//	page(border box) = parent.contentOrigin + (X, Y) + (Margin.Left, Margin.Top)
//	contentOrigin    = page(border box) + (Border.Left, Border.Top) - (ScrollX, ScrollY)

// contentOrigin returns the page position children are placed against.
// A nil node is the page itself.
func (n *Node) contentOrigin() Vec2 {
	if n == nil {
		return Vec2{}
	}
	r := n.PageRect()
	return Vec2{
		X: r.X + n.Border.Left - n.ScrollX,
		Y: r.Y + n.Border.Top - n.ScrollY,
	}
}

// PageRect returns the node's border box in page coordinates.
func (n *Node) PageRect() Rect {
	o := n.Parent.contentOrigin()
	return Rect{
		X:      o.X + n.X + n.Margin.Left,
		Y:      o.Y + n.Y + n.Margin.Top,
		Width:  n.Width,
		Height: n.Height,
	}
}

// PaddingRect returns the node's padding box (inside the border) in page
// coordinates. Overflow clipping uses this box.
func (n *Node) PaddingRect() Rect {
	r := n.PageRect()
	return Rect{
		X:      r.X + n.Border.Left,
		Y:      r.Y + n.Border.Top,
		Width:  r.Width - n.Border.Horizontal(),
		Height: r.Height - n.Border.Vertical(),
	}
}

// SetPagePosition moves the node so that its border box starts at the
// given page coordinates.
func (n *Node) SetPagePosition(px, py float64) {
	o := n.Parent.contentOrigin()
	n.X = px - o.X - n.Margin.Left
	n.Y = py - o.Y - n.Margin.Top
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize sets the node's border-box width and height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// OffsetParent returns the node that X/Y are relative to.
func (n *Node) OffsetParent() *Node {
	return n.Parent
}

// OuterWidth returns the border-box width plus horizontal margins.
func (n *Node) OuterWidth() float64 {
	return n.Width + n.Margin.Horizontal()
}

// OuterHeight returns the border-box height plus vertical margins.
func (n *Node) OuterHeight() float64 {
	return n.Height + n.Margin.Vertical()
}

// ScrollWidth returns the scrollable content width.
func (n *Node) ScrollWidth() float64 {
	if n.ContentWidth > n.Width {
		return n.ContentWidth
	}
	return n.Width
}

// ScrollHeight returns the scrollable content height.
func (n *Node) ScrollHeight() float64 {
	if n.ContentHeight > n.Height {
		return n.ContentHeight
	}
	return n.Height
}

// PageToLocal converts a page-space point to coordinates relative to the
// node's border-box top-left corner.
func (n *Node) PageToLocal(px, py float64) (lx, ly float64) {
	r := n.PageRect()
	return px - r.X, py - r.Y
}

// LocalToPage converts a border-box-local point to page space.
func (n *Node) LocalToPage(lx, ly float64) (px, py float64) {
	r := n.PageRect()
	return lx + r.X, ly + r.Y
}
