package grip

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// hitEntry is a candidate node together with the clip rectangle inherited
// from overflow-clipping ancestors.
type hitEntry struct {
	node    *Node
	clip    Rect
	clipped bool
}

// nodeContainsPage tests whether the page point falls inside a node's hit
// region. Uses HitShape if set; otherwise the border box.
func nodeContainsPage(n *Node, px, py float64) bool {
	r := n.PageRect()
	if n.HitShape != nil {
		return n.HitShape.Contains(px-r.X, py-r.Y)
	}
	if r.Width == 0 && r.Height == 0 {
		return false
	}
	return r.Contains(px, py)
}

// collectHittable walks the tree in painter order (DFS, ZIndex-sorted),
// appending candidates to buf. Invisible subtrees are skipped entirely;
// non-interactable nodes are skipped but their children are still visited.
func (s *Scene) collectHittable(n *Node, clip Rect, clipped bool, buf []hitEntry) []hitEntry {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, hitEntry{node: n, clip: clip, clipped: clipped})
	}
	if len(n.children) == 0 {
		return buf
	}

	if n.Overflow != OverflowVisible {
		pr := n.PaddingRect()
		if clipped {
			pr = intersectRect(pr, clip)
		}
		clip, clipped = pr, true
	}

	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectHittable(child, clip, clipped, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at the page point.
// Returns nil if nothing is hit.
func (s *Scene) hitTest(px, py float64) *Node {
	s.hitBuf = s.collectHittable(s.root, Rect{}, false, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		e := s.hitBuf[i]
		if e.clipped && !e.clip.Contains(px, py) {
			continue
		}
		if nodeContainsPage(e.node, px, py) {
			return e.node
		}
	}
	return nil
}

// ElementFromPoint returns the topmost visible, interactable node under the
// client coordinates, or nil.
func (s *Scene) ElementFromPoint(clientX, clientY float64) *Node {
	px, py := s.viewport.ClientToPage(clientX, clientY)
	return s.hitTest(px, py)
}

// rebuildSortedChildren refreshes n.sortedChildren with a stable
// insertion sort by ZIndex. The child slice itself keeps document order.
func rebuildSortedChildren(n *Node) {
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	sc := n.sortedChildren
	for i := 1; i < len(sc); i++ {
		c := sc[i]
		j := i - 1
		for j >= 0 && sc[j].ZIndex > c.ZIndex {
			sc[j+1] = sc[j]
			j--
		}
		sc[j+1] = c
	}
	n.childrenSorted = true
}

func intersectRect(a, b Rect) Rect {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.Right(), b.Right())
	y1 := min(a.Bottom(), b.Bottom())
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
