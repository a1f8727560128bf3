package grip

// syntheticPointerEvent represents a single injected pointer event in
// client coordinates, exactly what a host would report.
type syntheticPointerEvent struct {
	kind             PointerKind
	phase            Phase
	clientX, clientY float64
	touchID          int
}

func (s *Scene) inject(ev syntheticPointerEvent) {
	s.injectQueue = append(s.injectQueue, ev)
}

// InjectPress queues a mouse press at the given client coordinates. The
// event is dispatched on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerMouse, phase: PhaseDown, clientX: x, clientY: y})
}

// InjectMove queues a mouse move at the given client coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerMouse, phase: PhaseMove, clientX: x, clientY: y})
}

// InjectRelease queues a mouse release at the given client coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerMouse, phase: PhaseUp, clientX: x, clientY: y})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two updates.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), frames-2
// linearly interpolated moves, a move onto (toX, toY) and a release there.
// The sequence consumes frames+1 updates; frames below 2 count as 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.injectPath(PointerMouse, 0, fromX, fromY, toX, toY, frames)
}

// InjectTouchStart queues a touch-down for finger id.
func (s *Scene) InjectTouchStart(id int, x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerTouch, phase: PhaseDown, clientX: x, clientY: y, touchID: id})
}

// InjectTouchMove queues a touch move for finger id.
func (s *Scene) InjectTouchMove(id int, x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerTouch, phase: PhaseMove, clientX: x, clientY: y, touchID: id})
}

// InjectTouchEnd queues a touch-up for finger id.
func (s *Scene) InjectTouchEnd(id int, x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerTouch, phase: PhaseUp, clientX: x, clientY: y, touchID: id})
}

// InjectTouchCancel queues a touch cancel for finger id.
func (s *Scene) InjectTouchCancel(id int, x, y float64) {
	s.inject(syntheticPointerEvent{kind: PointerTouch, phase: PhaseCancel, clientX: x, clientY: y, touchID: id})
}

// InjectTap queues a touch-down and touch-up at the same point.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectTouchStart(0, x, y)
	s.InjectTouchEnd(0, x, y)
}

// InjectSwipe queues a single-finger touch path, shaped like InjectDrag.
func (s *Scene) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	s.injectPath(PointerTouch, 0, fromX, fromY, toX, toY, frames)
}

func (s *Scene) injectPath(kind PointerKind, id int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.inject(syntheticPointerEvent{kind: kind, phase: PhaseDown, clientX: fromX, clientY: fromY, touchID: id})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.inject(syntheticPointerEvent{kind: kind, phase: PhaseMove, clientX: x, clientY: y, touchID: id})
	}
	s.inject(syntheticPointerEvent{kind: kind, phase: PhaseMove, clientX: toX, clientY: toY, touchID: id})
	s.inject(syntheticPointerEvent{kind: kind, phase: PhaseUp, clientX: toX, clientY: toY, touchID: id})
}

// PendingInjections reports how many injected events are still queued.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and dispatches
// it. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.kind == PointerTouch {
		s.DispatchTouch(evt.phase, TouchPoint{ID: evt.touchID, ClientX: evt.clientX, ClientY: evt.clientY})
	} else {
		s.DispatchMouse(evt.phase, evt.clientX, evt.clientY)
	}
	return true
}
