package grip

// Droppable marks an element as a drop target for helpers dragged in the
// same scope.
type Droppable struct {
	OnOver func(OverEvent)
	OnOut  func(OutEvent)
	OnDrop func(DropEvent)

	scene   *Scene
	element *Node
	opts    DropOptions
	accept  *Selector

	mouseOver      bool
	dragStopCalled bool
	dragData       map[string]DragEntry

	upHandle  ListenerHandle
	destroyed bool
}

var _ DropTarget = (*Droppable)(nil)

// NewDroppable registers el as a drop target. An empty scope means
// DefaultScope. An invalid Accept selector accepts nothing.
func NewDroppable(s *Scene, el *Node, opts DropOptions) *Droppable {
	if opts.Scope == "" {
		opts.Scope = DefaultScope
	}
	d := &Droppable{
		scene:    s,
		element:  el,
		opts:     opts,
		dragData: make(map[string]DragEntry),
	}
	if opts.Accept != "" {
		d.accept = lookupSelector(opts.Accept)
		if d.accept == nil {
			s.logf("droppable %s: invalid accept selector %q", nodeLabel(el), opts.Accept)
		}
	}
	// A pointer-up that reaches the element before the drag engine has
	// finished is ignored by Drop because the latch is still clear.
	d.upHandle = s.On(el, PhaseUp, func(e *PointerEvent) { d.Drop(e) })
	s.coordinator.RegisterDropTarget(d)
	return d
}

// Element returns the drop target element.
func (d *Droppable) Element() *Node { return d.element }

// Scope returns the drop scope.
func (d *Droppable) Scope() string { return d.opts.Scope }

// IsOver reports whether a helper is currently hovering the element.
func (d *Droppable) IsOver() bool { return d.mouseOver }

// DragData returns the last drag entry handed over for scope.
func (d *Droppable) DragData(scope string) (DragEntry, bool) {
	e, ok := d.dragData[scope]
	return e, ok
}

// SetDragData records which drag is interacting with this target.
func (d *Droppable) SetDragData(scope string, entry DragEntry) {
	d.dragData[scope] = entry
}

// MarkDragStopped arms the next Drop call.
func (d *Droppable) MarkDragStopped() {
	d.dragStopCalled = true
}

// Accepts reports whether helper matches the accept selector.
func (d *Droppable) Accepts(helper *Node) bool {
	if d.opts.Accept == "" {
		return true
	}
	return d.accept.Match(helper)
}

// Over fires the over callback on the first hover after none.
func (d *Droppable) Over(e *PointerEvent, entry *DragEntry) {
	if d.destroyed || d.mouseOver {
		return
	}
	d.mouseOver = true
	var helper *Node
	if entry != nil {
		d.dragData[d.opts.Scope] = *entry
		helper = entry.Helper
	}
	if d.OnOver != nil {
		d.OnOver(OverEvent{Event: e, Target: d.element, DragData: entry})
	}
	ev := interactionFor(EventOver, d.element, helper, e)
	ev.Scope = d.opts.Scope
	d.scene.emitInteraction(ev)
}

// Out fires the out callback when a hover ends.
func (d *Droppable) Out(e *PointerEvent) {
	if d.destroyed || !d.mouseOver {
		return
	}
	d.mouseOver = false
	if d.OnOut != nil {
		d.OnOut(OutEvent{Event: e, Target: d.element})
	}
	ev := interactionFor(EventOut, d.element, nil, e)
	ev.Scope = d.opts.Scope
	d.scene.emitInteraction(ev)
}

// Drop completes a drop. It requires the drag-stopped latch (consumed by
// this call), a visible helper, an accept match and the pointer inside the
// element. The hover state is reset without firing out.
func (d *Droppable) Drop(e *PointerEvent) bool {
	if d.destroyed || !d.dragStopCalled {
		return false
	}
	d.dragStopCalled = false

	entry, ok := d.dragData[d.opts.Scope]
	if !ok || entry.Helper == nil {
		return false
	}
	helper := entry.Helper
	if !helper.IsVisible() || !d.Accepts(helper) || !d.isDropArea(e, helper) {
		return false
	}

	d.mouseOver = false
	if d.OnDrop != nil {
		d.OnDrop(DropEvent{Event: e, Target: d.element, DroppedElement: helper, DragData: &entry})
	}
	ev := interactionFor(EventDrop, d.element, helper, e)
	ev.Scope = d.opts.Scope
	d.scene.emitInteraction(ev)
	d.scene.logf("drop %s on %s", nodeLabel(helper), nodeLabel(d.element))
	return true
}

// isDropArea checks that the pointer is over the element, looking beneath
// the helper when it could be occluding the point.
func (d *Droppable) isDropArea(e *PointerEvent, helper *Node) bool {
	target := e.Target
	if e.IsTouch() || helper.Contains(target) {
		target = d.scene.coordinator.pointUnder(e, helper)
	}
	return target != nil && d.element.Contains(target)
}

// Destroy unregisters the target. Safe to call more than once.
func (d *Droppable) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.upHandle.Remove()
	if d.scene.coordinator.DropTargetOf(d.element) == d {
		d.scene.coordinator.UnregisterDropTarget(d.element)
	}
}
