package grip

import (
	"bytes"
	"errors"
	"image/color"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

const boardMarkup = `
<div id="board" class="area big" x="10" y="20px" width="300" height="200"
     border="2" padding="1 2" overflow="scroll" content-height="900"
     scroll-y="5" z-index="3" data-kind="tray">
  <div id="card" class="card" width="50" height="40" margin="1 2 3 4"
       hidden pointer-events="none"></div>
  some text <!-- a comment -->
</div>
<span id="second"></span>`

func TestParseMarkup(t *testing.T) {
	nodes, err := ParseMarkupString(boardMarkup)
	if err != nil {
		t.Fatalf("ParseMarkupString: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("top-level nodes = %d, want 2", len(nodes))
	}
	board, second := nodes[0], nodes[1]
	if board.Tag != "div" || board.Name != "board" || second.Tag != "span" || second.Name != "second" {
		t.Errorf("nodes = %s, %s", nodeLabel(board), nodeLabel(second))
	}
	if board.Parent != nil {
		t.Error("parsed nodes should have no parent")
	}
	if !reflect.DeepEqual(board.Classes(), []string{"area", "big"}) {
		t.Errorf("classes = %v", board.Classes())
	}
	if board.X != 10 || board.Y != 20 || board.Width != 300 || board.Height != 200 {
		t.Errorf("box = (%v, %v, %v, %v)", board.X, board.Y, board.Width, board.Height)
	}
	if board.Border != (Edges{Top: 2, Right: 2, Bottom: 2, Left: 2}) {
		t.Errorf("border = %+v", board.Border)
	}
	if board.Padding != (Edges{Top: 1, Right: 2, Bottom: 1, Left: 2}) {
		t.Errorf("padding = %+v", board.Padding)
	}
	if board.Overflow != OverflowScroll || board.ContentHeight != 900 || board.ScrollY != 5 || board.ZIndex != 3 {
		t.Errorf("scroll fields = %v %v %v %v", board.Overflow, board.ContentHeight, board.ScrollY, board.ZIndex)
	}
	if v, ok := board.Attr("data-kind"); !ok || v != "tray" {
		t.Errorf("data-kind = %q, %v", v, ok)
	}
	if _, ok := board.Attr("width"); ok {
		t.Error("layout attributes should not be kept as plain attributes")
	}

	if board.NumChildren() != 1 {
		t.Fatalf("board children = %d, want 1", board.NumChildren())
	}
	card := board.ChildAt(0)
	if card.Margin != (Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}) {
		t.Errorf("margin = %+v", card.Margin)
	}
	if card.Visible || card.Interactable {
		t.Errorf("visible=%v interactable=%v, want false false", card.Visible, card.Interactable)
	}
}

func TestParseEdges(t *testing.T) {
	tests := []struct {
		in   string
		want Edges
	}{
		{"4", Edges{4, 4, 4, 4}},
		{"1 2", Edges{1, 2, 1, 2}},
		{"1 2 3", Edges{1, 2, 3, 2}},
		{"1px 2px 3px 4px", Edges{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got, err := parseEdges(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseEdges(%q) = %+v, %v, want %+v", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseEdges("1 2 3 4 5"); err == nil {
		t.Error("five values should fail")
	}
	if _, err := parseEdges(""); err == nil {
		t.Error("no values should fail")
	}
}

func TestParseMarkupErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		attr string
	}{
		{"number", `<div width="wide"></div>`, "width"},
		{"edges", `<div margin="1 2 3 4 5"></div>`, "margin"},
		{"overflow", `<div overflow="sideways"></div>`, "overflow"},
		{"z-index", `<div z-index="1.5"></div>`, "z-index"},
		{"nested", `<div><p id="x" y="?"></p></div>`, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarkupString(tt.src)
			var me *MarkupError
			if !errors.As(err, &me) {
				t.Fatalf("error = %v, want *MarkupError", err)
			}
			if me.Attr != tt.attr {
				t.Errorf("Attr = %q, want %q", me.Attr, tt.attr)
			}
			if !strings.Contains(err.Error(), strconv.Quote(tt.attr)) {
				t.Errorf("message %q should name the attribute", err.Error())
			}
		})
	}

	_, err := ParseMarkupString(`<div x="nope"></div>`)
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("error = %v, want it to wrap strconv.ErrSyntax", err)
	}
}

func TestLoadMarkup(t *testing.T) {
	s := NewScene()
	nodes, err := LoadMarkup(s.Root(), `<div id="a" width="10" height="10"></div><div id="b"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 || s.Root().NumChildren() != 2 || nodes[0].Parent != s.Root() {
		t.Error("loaded nodes should be appended to the parent")
	}
	if s.Root().Query("#b") != nodes[1] {
		t.Error("query should find the loaded node")
	}
	if _, err := LoadMarkup(s.Root(), `<div x="?"></div>`); err == nil {
		t.Error("bad markup should fail")
	}
	if s.Root().NumChildren() != 2 {
		t.Error("failed load should not append anything")
	}
}

func TestRenderMarkup(t *testing.T) {
	n := NewBox("a", 1, 2, 3, 4)
	n.AddClass("card", "red")
	n.SetAttr("data-k", "v")
	n.SetAttr("color", "#f00")
	child := NewElement("span", "")
	child.Visible = false
	n.AddChild(child)

	var buf bytes.Buffer
	if err := RenderMarkup(&buf, n); err != nil {
		t.Fatal(err)
	}
	want := `<div id="a" class="card red" x="1" y="2" width="3" height="4" color="#f00" data-k="v">` +
		`<span x="0" y="0" width="0" height="0" hidden=""></span></div>`
	if buf.String() != want {
		t.Errorf("RenderMarkup =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestRenderMarkupRoundTrip(t *testing.T) {
	nodes, err := ParseMarkupString(boardMarkup)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := RenderMarkup(&buf, nodes...); err != nil {
		t.Fatal(err)
	}
	again, err := ParseMarkupString(buf.String())
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("round trip nodes = %d, want 2", len(again))
	}
	a, b := nodes[0], again[0]
	if a.Name != b.Name || a.X != b.X || a.Border != b.Border || a.Padding != b.Padding ||
		a.Overflow != b.Overflow || a.ScrollY != b.ScrollY || a.ContentHeight != b.ContentHeight ||
		a.ZIndex != b.ZIndex || !reflect.DeepEqual(a.Classes(), b.Classes()) {
		t.Error("board changed across a render round trip")
	}
	ca, cb := a.ChildAt(0), b.ChildAt(0)
	if ca.Margin != cb.Margin || ca.Visible != cb.Visible || ca.Interactable != cb.Interactable {
		t.Error("card changed across a render round trip")
	}
}

func TestOverflowString(t *testing.T) {
	for _, o := range []Overflow{OverflowVisible, OverflowHidden, OverflowAuto, OverflowScroll} {
		got, err := parseOverflow(o.String())
		if err != nil || got != o {
			t.Errorf("parseOverflow(%q) = %v, %v", o.String(), got, err)
		}
	}
	if Overflow(9).String() != "unknown" {
		t.Error("out of range overflow should be unknown")
	}
}

// ---- Style -----------------------------------------------------------------

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#f80", color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 0xff}},
		{"#112233", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}},
		{" #11223344 ", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"abc", color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "#1234567"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestNodeColor(t *testing.T) {
	n := NewBox("n", 0, 0, 1, 1)
	if _, ok := NodeColor(n); ok {
		t.Error("no color attribute should report false")
	}
	n.SetAttr("color", "#0f0")
	if c, ok := NodeColor(n); !ok || c != (color.RGBA{R: 0, G: 0xff, B: 0, A: 0xff}) {
		t.Errorf("NodeColor = %v, %v", c, ok)
	}
	n.SetAttr("color", "green")
	if _, ok := NodeColor(n); ok {
		t.Error("invalid color should report false")
	}
}

func TestPaintOrder(t *testing.T) {
	root := NewElement("body", "root")
	a := NewBox("a", 0, 0, 1, 1)
	b := NewBox("b", 0, 0, 1, 1)
	c := NewBox("c", 0, 0, 1, 1)
	hidden := NewBox("hidden", 0, 0, 1, 1)
	hidden.Visible = false
	a1 := NewBox("a1", 0, 0, 1, 1)
	a.AddChild(a1)
	hidden.AddChild(NewBox("under-hidden", 0, 0, 1, 1))
	root.AddChild(a)
	root.AddChild(b)
	root.AddChild(hidden)
	root.AddChild(c)
	a.SetZIndex(5)

	var names []string
	PaintOrder(root, func(n *Node) { names = append(names, n.Name) })
	want := []string{"root", "b", "c", "a", "a1"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("paint order = %v, want %v", names, want)
	}
	PaintOrder(nil, func(*Node) { t.Error("nil root should paint nothing") })
}
