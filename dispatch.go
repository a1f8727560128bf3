package grip

// DispatchMouse delivers a mouse event at client coordinates. The target is
// the topmost node under the pointer. Returns the dispatched event so hosts
// can inspect DefaultPrevented.
func (s *Scene) DispatchMouse(phase Phase, clientX, clientY float64) *PointerEvent {
	px, py := s.viewport.ClientToPage(clientX, clientY)
	e := &PointerEvent{
		Phase:   phase,
		Kind:    PointerMouse,
		Time:    s.Now(),
		ClientX: clientX,
		ClientY: clientY,
		PageX:   px,
		PageY:   py,
	}
	e.Target = s.hitTest(px, py)
	s.dispatch(e)
	return e
}

// DispatchTouch delivers a touch event for the fingers that changed. Page
// coordinates of the touch points are filled in from the viewport. Touch
// events are implicitly captured: moves and releases go to the node that
// was under the finger when it went down, wherever the finger is now.
func (s *Scene) DispatchTouch(phase Phase, touches ...TouchPoint) *PointerEvent {
	if len(touches) == 0 {
		return nil
	}
	changed := make([]TouchPoint, len(touches))
	for i, t := range touches {
		t.PageX, t.PageY = s.viewport.ClientToPage(t.ClientX, t.ClientY)
		changed[i] = t
	}
	first := changed[0]
	e := &PointerEvent{
		Phase:          phase,
		Kind:           PointerTouch,
		Time:           s.Now(),
		ClientX:        first.ClientX,
		ClientY:        first.ClientY,
		PageX:          first.PageX,
		PageY:          first.PageY,
		ChangedTouches: changed,
	}

	if s.touchTargets == nil {
		s.touchTargets = make(map[int]*Node)
	}
	switch phase {
	case PhaseDown:
		for _, t := range changed {
			s.touchTargets[t.ID] = s.hitTest(t.PageX, t.PageY)
		}
		e.Target = s.touchTargets[first.ID]
	default:
		target, ok := s.touchTargets[first.ID]
		if !ok {
			target = s.hitTest(first.PageX, first.PageY)
		}
		e.Target = target
	}

	s.dispatch(e)

	if phase == PhaseUp || phase == PhaseCancel {
		for _, t := range changed {
			delete(s.touchTargets, t.ID)
		}
	}
	return e
}

// dispatch runs node listeners from the target up to the root, then the
// document listeners. The propagation path and each listener list are
// fixed before any listener runs.
func (s *Scene) dispatch(e *PointerEvent) {
	target := e.Target
	var path []*Node
	for n := target; n != nil; n = n.Parent {
		path = append(path, n)
	}

	for _, n := range path {
		for _, l := range s.listeners.forNode(n, e.Phase) {
			if l.removed {
				continue
			}
			current := n
			if l.selector != nil {
				current = closestWithin(target, n, l.selector)
				if current == nil {
					continue
				}
			}
			e.CurrentTarget = current
			l.fn(e)
			if e.stopped {
				e.CurrentTarget = nil
				return
			}
		}
	}

	e.CurrentTarget = nil
	for _, l := range s.listeners.doc[e.Phase] {
		if l.removed {
			continue
		}
		l.fn(e)
		if e.stopped {
			return
		}
	}
}
