package grip

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MarkupError reports an attribute that could not be applied to a node.
type MarkupError struct {
	Node *Node
	Attr string
	Err  error
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("markup: %s: attribute %q: %v", nodeLabel(e.Node), e.Attr, e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

// Layout attributes understood by ParseMarkup. They set Node fields and are
// not stored as plain attributes.
//
//	x, y, width, height               numbers
//	margin, border, padding           1 to 4 numbers, CSS shorthand order
//	overflow                          visible | hidden | auto | scroll
//	scroll-x, scroll-y                numbers
//	content-width, content-height     numbers
//	z-index                           integer
//	hidden                            present: Visible = false
//	pointer-events                    "none": Interactable = false
//
// id becomes Name; class becomes the class list. Anything else is kept as
// an attribute.
var layoutAttrs = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"margin": true, "border": true, "padding": true, "overflow": true,
	"scroll-x": true, "scroll-y": true, "content-width": true, "content-height": true,
	"z-index": true, "hidden": true, "pointer-events": true,
}

// ParseMarkup builds element trees from an HTML fragment. Text and
// comments are ignored. The returned nodes have no parent.
func ParseMarkup(r io.Reader) ([]*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	frag, err := html.ParseFragment(r, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	var out []*Node
	for _, hn := range frag {
		if hn.Type != html.ElementNode {
			continue
		}
		n, err := buildNode(hn)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ParseMarkupString is ParseMarkup for a string.
func ParseMarkupString(src string) ([]*Node, error) {
	return ParseMarkup(strings.NewReader(src))
}

// LoadMarkup parses src and appends the resulting elements to parent.
func LoadMarkup(parent *Node, src string) ([]*Node, error) {
	nodes, err := ParseMarkupString(src)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		parent.AddChild(n)
	}
	return nodes, nil
}

func buildNode(hn *html.Node) (*Node, error) {
	n := NewElement(hn.Data, "")
	for _, a := range hn.Attr {
		if err := applyAttr(n, a.Key, a.Val); err != nil {
			return nil, &MarkupError{Node: n, Attr: a.Key, Err: err}
		}
	}
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child, err := buildNode(c)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func applyAttr(n *Node, key, val string) error {
	var err error
	switch key {
	case "id":
		n.Name = val
	case "x":
		n.X, err = parseNumber(val)
	case "y":
		n.Y, err = parseNumber(val)
	case "width":
		n.Width, err = parseNumber(val)
	case "height":
		n.Height, err = parseNumber(val)
	case "margin":
		n.Margin, err = parseEdges(val)
	case "border":
		n.Border, err = parseEdges(val)
	case "padding":
		n.Padding, err = parseEdges(val)
	case "overflow":
		n.Overflow, err = parseOverflow(val)
	case "scroll-x":
		n.ScrollX, err = parseNumber(val)
	case "scroll-y":
		n.ScrollY, err = parseNumber(val)
	case "content-width":
		n.ContentWidth, err = parseNumber(val)
	case "content-height":
		n.ContentHeight, err = parseNumber(val)
	case "z-index":
		var z int
		z, err = strconv.Atoi(strings.TrimSpace(val))
		n.ZIndex = z
	case "hidden":
		n.Visible = false
	case "pointer-events":
		n.Interactable = strings.TrimSpace(val) != "none"
	default:
		n.SetAttr(key, val)
	}
	return err
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// parseEdges reads CSS shorthand: "a", "v h", "t h b" or "t r b l".
func parseEdges(s string) (Edges, error) {
	fields := strings.Fields(s)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return Edges{}, err
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return Edges{Top: vals[0], Right: vals[0], Bottom: vals[0], Left: vals[0]}, nil
	case 2:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return Edges{}, fmt.Errorf("want 1 to 4 values, got %d", len(vals))
	}
}

var overflowNames = [...]string{
	OverflowVisible: "visible",
	OverflowHidden:  "hidden",
	OverflowAuto:    "auto",
	OverflowScroll:  "scroll",
}

func parseOverflow(s string) (Overflow, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range overflowNames {
		if s == name {
			return Overflow(i), nil
		}
	}
	return OverflowVisible, fmt.Errorf("unknown overflow %q", s)
}

func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return "unknown"
}

// RenderMarkup writes nodes and their subtrees as HTML, with layout fields
// written back as the attributes ParseMarkup reads.
func RenderMarkup(w io.Writer, nodes ...*Node) error {
	for _, n := range nodes {
		if err := html.Render(w, toHTML(n)); err != nil {
			return fmt.Errorf("render markup: %w", err)
		}
	}
	return nil
}

func toHTML(n *Node) *html.Node {
	hn := &html.Node{Type: html.ElementNode, Data: n.Tag, DataAtom: atom.Lookup([]byte(n.Tag))}
	add := func(k, v string) {
		hn.Attr = append(hn.Attr, html.Attribute{Key: k, Val: v})
	}
	num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	edges := func(e Edges) string {
		return num(e.Top) + " " + num(e.Right) + " " + num(e.Bottom) + " " + num(e.Left)
	}

	if n.Name != "" {
		add("id", n.Name)
	}
	if len(n.classes) > 0 {
		add("class", strings.Join(n.classes, " "))
	}
	add("x", num(n.X))
	add("y", num(n.Y))
	add("width", num(n.Width))
	add("height", num(n.Height))
	if n.Margin != (Edges{}) {
		add("margin", edges(n.Margin))
	}
	if n.Border != (Edges{}) {
		add("border", edges(n.Border))
	}
	if n.Padding != (Edges{}) {
		add("padding", edges(n.Padding))
	}
	if n.Overflow != OverflowVisible {
		add("overflow", n.Overflow.String())
	}
	if n.ScrollX != 0 {
		add("scroll-x", num(n.ScrollX))
	}
	if n.ScrollY != 0 {
		add("scroll-y", num(n.ScrollY))
	}
	if n.ContentWidth != 0 {
		add("content-width", num(n.ContentWidth))
	}
	if n.ContentHeight != 0 {
		add("content-height", num(n.ContentHeight))
	}
	if n.ZIndex != 0 {
		add("z-index", strconv.Itoa(n.ZIndex))
	}
	if !n.Visible {
		add("hidden", "")
	}
	if !n.Interactable {
		add("pointer-events", "none")
	}
	for _, k := range n.attrKeys() {
		add(k, n.attrs[k])
	}
	for _, c := range n.children {
		hn.AppendChild(toHTML(c))
	}
	return hn
}
