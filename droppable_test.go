package grip

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestNewDroppableDefaults(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 10, 10)
	s.Root().AddChild(bin)
	d := NewDroppable(s, bin, DropOptions{})
	if d.Scope() != DefaultScope {
		t.Errorf("Scope = %q, want %q", d.Scope(), DefaultScope)
	}
	if d.Element() != bin {
		t.Error("Element should return the target element")
	}
	if s.Coordinator().DropTargetOf(bin) != d {
		t.Error("droppable should be registered on its element")
	}
	if !d.Accepts(NewBox("any", 0, 0, 1, 1)) {
		t.Error("empty accept should accept anything")
	}
}

func TestDroppableInvalidAccept(t *testing.T) {
	s := NewScene()
	var buf bytes.Buffer
	s.SetLogOutput(&buf)
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	d := NewDroppable(s, NewBox("bin", 0, 0, 10, 10), DropOptions{Accept: "[["})
	if d.Accepts(NewBox("any", 0, 0, 1, 1)) {
		t.Error("an invalid accept selector should accept nothing")
	}
	if !strings.Contains(buf.String(), "invalid accept selector") {
		t.Errorf("log = %q, want an invalid selector warning", buf.String())
	}
}

func TestDroppableOverOutEdgeTriggered(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 10, 10)
	s.Root().AddChild(bin)
	d := NewDroppable(s, bin, DefaultDropOptions())
	events := recordTypes(s)

	var overs, outs int
	d.OnOver = func(OverEvent) { overs++ }
	d.OnOut = func(OutEvent) { outs++ }

	e := &PointerEvent{}
	d.Out(e)
	d.Over(e, nil)
	d.Over(e, nil)
	d.Out(e)
	d.Out(e)
	if overs != 1 || outs != 1 {
		t.Errorf("overs/outs = %d/%d, want 1/1", overs, outs)
	}
	if !reflect.DeepEqual(*events, []string{"over", "out"}) {
		t.Errorf("events = %v, want [over out]", *events)
	}
}

func TestDroppableDropRequiresLatch(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 50, 50)
	helper := NewBox("helper", 0, 0, 10, 10)
	s.Root().AddChild(bin)
	s.Root().AddChild(helper)
	d := NewDroppable(s, bin, DefaultDropOptions())
	d.SetDragData(DefaultScope, DragEntry{Helper: helper})

	e := s.DispatchMouse(PhaseMove, 30, 30)
	if d.Drop(e) {
		t.Fatal("Drop without MarkDragStopped should fail")
	}
	d.MarkDragStopped()
	if !d.Drop(e) {
		t.Fatal("Drop with latch, visible helper and pointer inside should succeed")
	}
	if d.Drop(e) {
		t.Error("the latch should be consumed by the first Drop")
	}
}

func TestDroppableDropConditions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(helper *Node, d *Droppable)
		x, y  float64
		want  bool
	}{
		{"ok", func(*Node, *Droppable) {}, 30, 30, true},
		{"pointer outside", func(*Node, *Droppable) {}, 300, 30, false},
		{"hidden helper", func(h *Node, _ *Droppable) { h.Visible = false }, 30, 30, false},
		{"no drag data", func(_ *Node, d *Droppable) { delete(d.dragData, DefaultScope) }, 30, 30, false},
		{"rejected by accept", func(_ *Node, d *Droppable) {
			d.opts.Accept = ".card"
			d.accept = lookupSelector(".card")
		}, 30, 30, false},
		{"destroyed", func(_ *Node, d *Droppable) { d.Destroy() }, 30, 30, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			bin := NewBox("bin", 0, 0, 50, 50)
			helper := NewBox("helper", 200, 200, 10, 10)
			s.Root().AddChild(bin)
			s.Root().AddChild(helper)
			d := NewDroppable(s, bin, DefaultDropOptions())
			var drops int
			d.OnDrop = func(DropEvent) { drops++ }
			d.SetDragData(DefaultScope, DragEntry{Helper: helper})
			d.MarkDragStopped()
			tt.setup(helper, d)

			e := s.DispatchMouse(PhaseMove, tt.x, tt.y)
			if got := d.Drop(e); got != tt.want {
				t.Errorf("Drop = %v, want %v", got, tt.want)
			}
			if want := map[bool]int{true: 1, false: 0}[tt.want]; drops != want {
				t.Errorf("OnDrop calls = %d, want %d", drops, want)
			}
		})
	}
}

func TestDroppableDropLooksBeneathHelper(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 50, 50)
	helper := NewBox("helper", 20, 20, 20, 20)
	s.Root().AddChild(bin)
	s.Root().AddChild(helper)
	d := NewDroppable(s, bin, DefaultDropOptions())
	d.SetDragData(DefaultScope, DragEntry{Helper: helper})
	d.MarkDragStopped()

	e := s.DispatchMouse(PhaseUp, 30, 30)
	if e.Target != helper {
		t.Fatalf("target = %s, want the helper on top", nodeLabel(e.Target))
	}
	if !d.Drop(e) {
		t.Error("drop should see the bin beneath the helper")
	}
	if !helper.Visible {
		t.Error("helper visibility must be restored")
	}
}

func TestDroppableUpListenerIgnoredWithoutLatch(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 50, 50)
	s.Root().AddChild(bin)
	d := NewDroppable(s, bin, DefaultDropOptions())
	d.SetDragData(DefaultScope, DragEntry{Helper: NewBox("h", 0, 0, 5, 5)})
	var drops int
	d.OnDrop = func(DropEvent) { drops++ }
	s.DispatchMouse(PhaseUp, 10, 10)
	if drops != 0 {
		t.Errorf("drops = %d, want 0", drops)
	}
}

func TestDroppableDestroy(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 50, 50)
	s.Root().AddChild(bin)
	d := NewDroppable(s, bin, DefaultDropOptions())
	d.Destroy()
	d.Destroy()
	if s.Coordinator().DropTargetOf(bin) != nil {
		t.Error("destroyed droppable should be unregistered")
	}
	var overs int
	d.OnOver = func(OverEvent) { overs++ }
	d.Over(&PointerEvent{}, nil)
	if overs != 0 || d.IsOver() {
		t.Error("destroyed droppable should ignore Over")
	}
}

func TestDroppableDestroyKeepsReplacement(t *testing.T) {
	s := NewScene()
	bin := NewBox("bin", 0, 0, 50, 50)
	s.Root().AddChild(bin)
	old := NewDroppable(s, bin, DefaultDropOptions())
	repl := NewDroppable(s, bin, DropOptions{Scope: "cards"})
	old.Destroy()
	if s.Coordinator().DropTargetOf(bin) != repl {
		t.Error("destroying a replaced droppable should not unregister its replacement")
	}
}

// ---- Coordinator -----------------------------------------------------------

func TestCoordinatorScopes(t *testing.T) {
	s := NewScene()
	NewDraggable(s, NewBox("a", 0, 0, 1, 1), DragOptions{Scope: "zeta"})
	NewDroppable(s, NewBox("b", 0, 0, 1, 1), DropOptions{Scope: "alpha"})
	NewDraggable(s, NewBox("c", 0, 0, 1, 1), DragOptions{})

	want := []string{"alpha", "default", "zeta"}
	if got := s.Coordinator().Scopes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Scopes = %v, want %v", got, want)
	}
	for _, sc := range want {
		if s.Coordinator().Entry(sc) != nil {
			t.Errorf("scope %q should start empty", sc)
		}
	}
	if s.Coordinator().Entry("missing") != nil {
		t.Error("unknown scope should have no entry")
	}
}

func TestResolveTargetClimbsAncestors(t *testing.T) {
	s := NewScene()
	outer := NewBox("outer", 0, 0, 200, 200)
	inner := NewBox("inner", 10, 10, 100, 100)
	leaf := NewBox("leaf", 10, 10, 20, 20)
	inner.AddChild(leaf)
	outer.AddChild(inner)
	s.Root().AddChild(outer)

	outerDrop := NewDroppable(s, outer, DefaultDropOptions())
	innerDrop := NewDroppable(s, inner, DropOptions{Scope: "other"})
	helper := NewBox("helper", 0, 0, 5, 5)
	helper.AddClass("card")

	e := s.DispatchMouse(PhaseMove, 25, 25)
	if e.Target != leaf {
		t.Fatalf("target = %s, want leaf", nodeLabel(e.Target))
	}

	n, dt := s.Coordinator().ResolveTarget(e, DefaultScope, helper)
	if n != outer || dt != outerDrop {
		t.Errorf("default scope resolved %s, want outer", nodeLabel(n))
	}
	n, dt = s.Coordinator().ResolveTarget(e, "other", helper)
	if n != inner || dt != innerDrop {
		t.Errorf("other scope resolved %s, want inner", nodeLabel(n))
	}

	outerDrop.opts.Accept = ".plate"
	outerDrop.accept = lookupSelector(".plate")
	if n, _ := s.Coordinator().ResolveTarget(e, DefaultScope, helper); n != nil {
		t.Errorf("non-accepting target resolved %s, want none", nodeLabel(n))
	}
}

// stubTarget is a minimal custom DropTarget.
type stubTarget struct {
	el     *Node
	overs  int
	dropOK bool
}

func (st *stubTarget) Element() *Node { return st.el }
func (st *stubTarget) Scope() string { return DefaultScope }
func (st *stubTarget) Accepts(*Node) bool { return true }
func (st *stubTarget) Over(*PointerEvent, *DragEntry) { st.overs++ }
func (st *stubTarget) Out(*PointerEvent) {}
func (st *stubTarget) Drop(*PointerEvent) bool { return st.dropOK }
func (st *stubTarget) SetDragData(string, DragEntry) {}
func (st *stubTarget) MarkDragStopped() {}

func TestCustomDropTarget(t *testing.T) {
	s := NewScene()
	src := NewBox("src", 0, 0, 50, 50)
	zone := NewBox("zone", 100, 0, 50, 50)
	s.Root().AddChild(src)
	s.Root().AddChild(zone)
	NewDraggable(s, src, DefaultDragOptions())
	st := &stubTarget{el: zone, dropOK: true}
	s.Coordinator().RegisterDropTarget(st)

	s.DispatchMouse(PhaseDown, 10, 10)
	s.DispatchMouse(PhaseMove, 20, 10)
	s.DispatchMouse(PhaseMove, 130, 10)
	s.DispatchMouse(PhaseUp, 130, 10)
	if st.overs != 1 {
		t.Errorf("overs = %d, want 1", st.overs)
	}

	s.Coordinator().UnregisterDropTarget(zone)
	if s.Coordinator().DropTargetOf(zone) != nil {
		t.Error("target should be unregistered")
	}
}

// ---- Geometry ------------------------------------------------------------

func TestComputeDragLimit(t *testing.T) {
	area := NewBox("area", 10, 20, 100, 50)
	area.Border = Edges{Top: 1, Right: 2, Bottom: 3, Left: 4}
	area.Padding = Edges{Top: 5, Right: 6, Bottom: 7, Left: 8}
	area.ContentHeight = 80

	l := computeDragLimit(area)
	want := dragLimit{left: 22, top: 26, right: 102, bottom: 90, enabled: true}
	if l != want {
		t.Errorf("limit = %+v, want %+v", l, want)
	}
}

func TestGeometryClamp(t *testing.T) {
	g := dragGeometry{
		margin:     Edges{Top: 1, Right: 2, Bottom: 3, Left: 4},
		helperSize: Vec2{X: 10, Y: 10},
		limit:      dragLimit{left: 0, top: 0, right: 100, bottom: 50, enabled: true},
	}
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside", 30, 20, 30, 20},
		{"min edges include margin", -50, -50, 4, 1},
		{"max edges include margin", 500, 500, 88, 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := g.clamp(tt.x, tt.y)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("clamp(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}

	// A helper larger than the area sticks to the top-left edge.
	g.helperSize = Vec2{X: 500, Y: 500}
	if x, y := g.clamp(50, 50); x != 4 || y != 1 {
		t.Errorf("oversized clamp = (%v, %v), want (4, 1)", x, y)
	}

	g.limit.enabled = false
	if x, y := g.clamp(-50, 900); x != -50 || y != 900 {
		t.Errorf("disabled clamp = (%v, %v), want unchanged", x, y)
	}
}

func TestGeometryLocal(t *testing.T) {
	g := dragGeometry{parentOrigin: Vec2{X: 10, Y: 20}, margin: Edges{Top: 2, Left: 3}}
	x, y := g.local(100, 100)
	if x != 87 || y != 78 {
		t.Errorf("local = (%v, %v), want (87, 78)", x, y)
	}
}

func TestCaptureGeometry(t *testing.T) {
	parent := NewBox("parent", 100, 100, 300, 300)
	parent.Border = Edges{Top: 2, Left: 2}
	src := NewBox("src", 10, 10, 40, 40)
	parent.AddChild(src)

	g := captureGeometry(src, src, nil, Point{PageX: 120, PageY: 130}, nil)
	if g.offset.X != 112 || g.offset.Y != 112 {
		t.Errorf("offset = (%v, %v), want (112, 112)", g.offset.X, g.offset.Y)
	}
	if g.parentOrigin != (Vec2{X: 102, Y: 102}) {
		t.Errorf("parentOrigin = %+v, want (102, 102)", g.parentOrigin)
	}
	if g.diff != (Vec2{X: 8, Y: 18}) {
		t.Errorf("diff = %+v, want (8, 18)", g.diff)
	}
	if g.limit.enabled {
		t.Error("no area means no limit")
	}

	g = captureGeometry(src, src, nil, Point{PageX: 120, PageY: 130}, &Vec2{X: 1, Y: 2})
	if g.diff != (Vec2{X: 1, Y: 2}) {
		t.Errorf("cursorAt diff = %+v, want (1, 2)", g.diff)
	}
}
