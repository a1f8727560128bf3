package grip

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}) + "ff"
	case 6:
		s += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// NodeColor returns the node's "color" attribute, if set and valid.
func NodeColor(n *Node) (color.RGBA, bool) {
	v, ok := n.Attr("color")
	if !ok {
		return color.RGBA{}, false
	}
	c, err := ParseColor(v)
	if err != nil {
		return color.RGBA{}, false
	}
	return c, true
}

// PaintOrder calls fn for n and every visible descendant in painter
// order: parents before children, siblings by ZIndex then document order.
func PaintOrder(n *Node, fn func(*Node)) {
	if n == nil || !n.Visible {
		return
	}
	fn(n)
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, c := range children {
		PaintOrder(c, fn)
	}
}
