package termhost

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/grip"
)

func newTestHost(t *testing.T) (*Host, *grip.Scene) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	s := grip.NewScene()
	return New(s, screen, Config{}), s
}

func TestNewSyncsViewport(t *testing.T) {
	_, s := newTestHost(t)
	vp := s.Viewport()
	if vp.Width != 320 || vp.Height != 160 {
		t.Errorf("viewport = %vx%v, want 320x160", vp.Width, vp.Height)
	}
}

func TestResizeEvent(t *testing.T) {
	h, s := newTestHost(t)
	if !h.HandleEvent(tcell.NewEventResize(20, 5)) {
		t.Fatal("resize should not quit")
	}
	vp := s.Viewport()
	if vp.Width != 160 || vp.Height != 80 {
		t.Errorf("viewport = %vx%v, want 160x80", vp.Width, vp.Height)
	}
}

func TestCellToClient(t *testing.T) {
	h, _ := newTestHost(t)
	x, y := h.CellToClient(2, 1)
	if x != 20 || y != 24 {
		t.Errorf("CellToClient(2, 1) = (%v, %v), want (20, 24)", x, y)
	}
}

func TestMouseDragAndDrop(t *testing.T) {
	h, s := newTestHost(t)
	src := grip.NewBox("src", 0, 0, 80, 32)
	dst := grip.NewBox("dst", 160, 0, 80, 32)
	s.Root().AddChild(src)
	s.Root().AddChild(dst)
	grip.NewDraggable(s, src, grip.DefaultDragOptions())
	drop := grip.NewDroppable(s, dst, grip.DefaultDropOptions())

	var dropped int
	drop.OnDrop = func(grip.DropEvent) { dropped++ }

	h.HandleEvent(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	// The first move crosses the threshold; the second one drags.
	h.HandleEvent(tcell.NewEventMouse(21, 0, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(22, 0, tcell.Button1, tcell.ModNone))
	if !drop.IsOver() {
		t.Error("IsOver = false after moving onto the target")
	}
	h.HandleEvent(tcell.NewEventMouse(22, 0, tcell.ButtonNone, tcell.ModNone))

	if dropped != 1 {
		t.Errorf("drops = %d, want 1", dropped)
	}
	if !strings.HasPrefix(h.Status(), "drop ") {
		t.Errorf("Status = %q, want drop", h.Status())
	}
	if got := s.Root().NumChildren(); got != 2 {
		t.Errorf("root children = %d, want 2 (helper removed)", got)
	}
}

func TestMouseMoveWithoutPress(t *testing.T) {
	h, s := newTestHost(t)
	var downs int
	box := grip.NewBox("box", 0, 0, 80, 32)
	s.Root().AddChild(box)
	s.On(box, grip.PhaseDown, func(*grip.PointerEvent) { downs++ })

	h.HandleEvent(tcell.NewEventMouse(1, 0, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(2, 0, tcell.ButtonNone, tcell.ModNone))
	if downs != 0 {
		t.Errorf("downs = %d, want 0", downs)
	}
	h.HandleEvent(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone))
	if downs != 1 {
		t.Errorf("downs = %d, want 1", downs)
	}
}

func TestDrawDoesNotPanic(t *testing.T) {
	h, s := newTestHost(t)
	box := grip.NewBox("box", -16, -16, 1000, 1000)
	box.SetAttr("color", "#336699")
	s.Root().AddChild(box)
	s.Root().AddChild(grip.NewBox("", 8, 8, 0, 0))
	h.Draw()
}

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone) }
	out := make(chan tcell.Event, 2)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(poll, out, done)
		close(finished)
	}()

	<-out
	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pumpEvents kept running after done was closed")
	}
}

func TestPumpEventsClosesOnNil(t *testing.T) {
	out := make(chan tcell.Event, 1)
	pumpEvents(func() tcell.Event { return nil }, out, make(chan struct{}))
	if _, ok := <-out; ok {
		t.Error("out should be closed once poll returns nil")
	}
}
