package grip

import (
	"reflect"
	"testing"
)

func newDispatchScene() (*Scene, *Node, *Node) {
	s := NewScene()
	parent := NewBox("parent", 0, 0, 200, 200)
	child := NewBox("child", 10, 10, 50, 50)
	parent.AddChild(child)
	s.Root().AddChild(parent)
	return s, parent, child
}

func TestDispatchMouseBubbles(t *testing.T) {
	s, parent, child := newDispatchScene()
	var order []string
	s.On(child, PhaseDown, func(e *PointerEvent) {
		order = append(order, "child")
		if e.CurrentTarget != child {
			t.Errorf("CurrentTarget = %s, want child", nodeLabel(e.CurrentTarget))
		}
	})
	s.On(parent, PhaseDown, func(e *PointerEvent) {
		order = append(order, "parent")
		if e.Target != child {
			t.Errorf("Target = %s, want child", nodeLabel(e.Target))
		}
	})
	s.OnDocument(PhaseDown, func(e *PointerEvent) {
		order = append(order, "document")
		if e.CurrentTarget != nil {
			t.Error("document listeners should see a nil CurrentTarget")
		}
	})

	e := s.DispatchMouse(PhaseDown, 20, 20)
	if !reflect.DeepEqual(order, []string{"child", "parent", "document"}) {
		t.Errorf("order = %v, want [child parent document]", order)
	}
	if e.Kind != PointerMouse || e.PageX != 20 || e.PageY != 20 {
		t.Errorf("event = %+v", e)
	}
}

func TestDispatchPhaseFilter(t *testing.T) {
	s, _, child := newDispatchScene()
	var downs, ups int
	s.On(child, PhaseDown, func(*PointerEvent) { downs++ })
	s.On(child, PhaseUp, func(*PointerEvent) { ups++ })
	s.DispatchMouse(PhaseUp, 20, 20)
	if downs != 0 || ups != 1 {
		t.Errorf("downs/ups = %d/%d, want 0/1", downs, ups)
	}
}

func TestDispatchNoTargetReachesDocument(t *testing.T) {
	s, _, _ := newDispatchScene()
	var got *PointerEvent
	s.OnDocument(PhaseMove, func(e *PointerEvent) { got = e })
	s.DispatchMouse(PhaseMove, 900, 900)
	if got == nil {
		t.Fatal("document listener did not run")
	}
	if got.Target != nil {
		t.Errorf("Target = %s, want nil", nodeLabel(got.Target))
	}
}

func TestStopPropagation(t *testing.T) {
	s, parent, child := newDispatchScene()
	var parentRan, docRan bool
	s.On(child, PhaseDown, func(e *PointerEvent) { e.StopPropagation() })
	s.On(parent, PhaseDown, func(*PointerEvent) { parentRan = true })
	s.OnDocument(PhaseDown, func(*PointerEvent) { docRan = true })
	s.DispatchMouse(PhaseDown, 20, 20)
	if parentRan || docRan {
		t.Errorf("parentRan=%v docRan=%v, want both false", parentRan, docRan)
	}
}

func TestPreventDefault(t *testing.T) {
	s, _, child := newDispatchScene()
	s.On(child, PhaseDown, func(e *PointerEvent) { e.PreventDefault() })
	if e := s.DispatchMouse(PhaseDown, 20, 20); !e.DefaultPrevented() {
		t.Error("DefaultPrevented = false")
	}
	if e := s.DispatchMouse(PhaseDown, 150, 150); e.DefaultPrevented() {
		t.Error("unrelated event should not be prevented")
	}
}

func TestListenerRemove(t *testing.T) {
	s, _, child := newDispatchScene()
	var n int
	h := s.On(child, PhaseDown, func(*PointerEvent) { n++ })
	s.DispatchMouse(PhaseDown, 20, 20)
	h.Remove()
	h.Remove() // idempotent
	s.DispatchMouse(PhaseDown, 20, 20)
	if n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
	ListenerHandle{}.Remove() // zero handle is a no-op
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	s, parent, child := newDispatchScene()
	var parentRan bool
	var ph ListenerHandle
	s.On(child, PhaseDown, func(*PointerEvent) { ph.Remove() })
	ph = s.On(parent, PhaseDown, func(*PointerEvent) { parentRan = true })
	s.DispatchMouse(PhaseDown, 20, 20)
	if parentRan {
		t.Error("listener removed mid-dispatch should not run")
	}
}

func TestListenerAddedDuringDispatchWaits(t *testing.T) {
	s, _, _ := newDispatchScene()
	var late int
	s.OnDocument(PhaseMove, func(*PointerEvent) {
		if late == 0 {
			s.OnDocument(PhaseMove, func(*PointerEvent) { late++ })
		}
	})
	s.DispatchMouse(PhaseMove, 1, 1)
	if late != 0 {
		t.Errorf("late listener ran %d times during the adding dispatch", late)
	}
	s.DispatchMouse(PhaseMove, 1, 1)
	if late != 1 {
		t.Errorf("late listener calls = %d, want 1", late)
	}
}

func TestOnDelegated(t *testing.T) {
	s, parent, child := newDispatchScene()
	child.AddClass("handle")
	var hits []*Node
	s.OnDelegated(parent, PhaseDown, ".handle", func(e *PointerEvent) {
		hits = append(hits, e.CurrentTarget)
	})

	s.DispatchMouse(PhaseDown, 20, 20)   // on child
	s.DispatchMouse(PhaseDown, 150, 150) // on parent only
	if len(hits) != 1 || hits[0] != child {
		t.Errorf("delegated hits = %d, want 1 on child", len(hits))
	}
}

func TestOnDelegatedInvalidSelector(t *testing.T) {
	s, parent, _ := newDispatchScene()
	var ran bool
	s.OnDelegated(parent, PhaseDown, "[[", func(*PointerEvent) { ran = true })
	s.DispatchMouse(PhaseDown, 20, 20)
	if ran {
		t.Error("invalid delegated selector should never match")
	}
}

func TestDispatchTouchCapture(t *testing.T) {
	s, _, child := newDispatchScene()
	var targets []*Node
	s.OnDocument(PhaseMove, func(e *PointerEvent) { targets = append(targets, e.Target) })
	s.OnDocument(PhaseUp, func(e *PointerEvent) { targets = append(targets, e.Target) })

	s.DispatchTouch(PhaseDown, TouchPoint{ID: 1, ClientX: 20, ClientY: 20})
	s.DispatchTouch(PhaseMove, TouchPoint{ID: 1, ClientX: 900, ClientY: 900})
	s.DispatchTouch(PhaseUp, TouchPoint{ID: 1, ClientX: 900, ClientY: 900})
	if len(targets) != 2 || targets[0] != child || targets[1] != child {
		t.Errorf("captured targets = %v, want child twice", targets)
	}
	if len(s.touchTargets) != 0 {
		t.Errorf("touchTargets = %d entries after release, want 0", len(s.touchTargets))
	}

	// Without a prior down the target is hit-tested.
	targets = nil
	s.DispatchTouch(PhaseMove, TouchPoint{ID: 2, ClientX: 900, ClientY: 900})
	if len(targets) != 1 || targets[0] != nil {
		t.Errorf("uncaptured target = %v, want nil", targets)
	}
}

func TestDispatchTouchFields(t *testing.T) {
	s := NewScene()
	s.Viewport().ScrollTo(0, 100)
	e := s.DispatchTouch(PhaseDown,
		TouchPoint{ID: 3, ClientX: 5, ClientY: 6},
		TouchPoint{ID: 4, ClientX: 50, ClientY: 60},
	)
	if !e.IsTouch() || !e.MultiTouch() {
		t.Error("expected a multi-touch touch event")
	}
	if e.PageY != 106 || e.ChangedTouches[1].PageY != 160 {
		t.Errorf("page Y = %v/%v, want 106/160", e.PageY, e.ChangedTouches[1].PageY)
	}
	p := Coordinates(e)
	if p.ClientX != 5 || p.PageY != 106 {
		t.Errorf("Coordinates = %+v", p)
	}
	if s.DispatchTouch(PhaseDown) != nil {
		t.Error("DispatchTouch with no touches should return nil")
	}
}

func TestPhaseString(t *testing.T) {
	want := map[Phase]string{PhaseDown: "down", PhaseMove: "move", PhaseUp: "up", PhaseCancel: "cancel", Phase(9): "unknown"}
	for p, w := range want {
		if p.String() != w {
			t.Errorf("Phase(%d) = %q, want %q", p, p.String(), w)
		}
	}
}
