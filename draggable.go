package grip

import (
	"github.com/tanema/gween/ease"
)

// DragState is the phase of a Draggable's current session.
type DragState uint8

const (
	DragIdle     DragState = iota // no pointer down
	DragArmed                     // pointer down, threshold not reached
	DragDragging                  // helper created and following the pointer
)

func (s DragState) String() string {
	switch s {
	case DragArmed:
		return "armed"
	case DragDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// dragSession holds the state of one pointer-down to pointer-up cycle.
type dragSession struct {
	start       Point
	last        Point
	lastEvent   *PointerEvent
	margin      Edges
	dragElement *Node // element the drag started from
	helper      *Node
	autoHelper  bool // helper was attached by the engine and is removed at the end
	geom        dragGeometry

	hover      *Node
	hoverDrop  DropTarget
	published  bool
	delayTimer *Timer
}

// Draggable turns pointer-down, move and up on an element into dragStart,
// drag and dragStop, moving a helper node and driving drop targets.
type Draggable struct {
	OnDragStart func(DragStartEvent)
	OnDrag      func(DragEvent)
	OnDragStop  func(DragStopEvent)

	scene   *Scene
	element *Node
	opts    DragOptions
	state   DragState
	sess    dragSession

	abort      *Selector
	dragTarget *Selector

	downHandle   ListenerHandle
	moveHandle   ListenerHandle
	upHandle     ListenerHandle
	cancelHandle ListenerHandle
	revert       *TweenGroup
	revertSess   dragSession
	destroyed    bool
}

// NewDraggable makes el draggable. An empty Scope falls back to
// DefaultScope and a zero or negative Distance to 1 pixel; start from
// DefaultDragOptions for the other defaults.
func NewDraggable(s *Scene, el *Node, opts DragOptions) *Draggable {
	if opts.Scope == "" {
		opts.Scope = DefaultScope
	}
	if opts.Distance <= 0 {
		opts.Distance = DefaultDragOptions().Distance
	}
	d := &Draggable{
		scene:   s,
		element: el,
		opts:    opts,
	}
	if opts.Abort != "" {
		d.abort = lookupSelector(opts.Abort)
	}
	if opts.DragTarget != "" {
		d.dragTarget = lookupSelector(opts.DragTarget)
	}
	s.coordinator.register(opts.Scope)
	if opts.Handle != "" {
		d.downHandle = s.OnDelegated(el, PhaseDown, opts.Handle, d.initialize)
	} else {
		d.downHandle = s.On(el, PhaseDown, d.initialize)
	}
	return d
}

// Element returns the draggable element.
func (d *Draggable) Element() *Node { return d.element }

// Scope returns the drag scope.
func (d *Draggable) Scope() string { return d.opts.Scope }

// State returns the current session state.
func (d *Draggable) State() DragState { return d.state }

// Helper returns the node being moved, or nil when not dragging.
func (d *Draggable) Helper() *Node {
	if d.state != DragDragging {
		return nil
	}
	return d.sess.helper
}

// --- Armed ---

func (d *Draggable) initialize(e *PointerEvent) {
	if d.destroyed || d.state != DragIdle || e.MultiTouch() {
		return
	}
	if d.abort != nil && closestWithin(e.Target, d.element, d.abort) != nil {
		return
	}

	d.stopRevert()

	src := d.element
	if d.dragTarget != nil {
		if t := closestWithin(e.Target, d.element, d.dragTarget); t != nil {
			src = t
		}
	}

	p := Coordinates(e)
	d.sess = dragSession{start: p, last: p, lastEvent: e, dragElement: src}
	d.state = DragArmed

	s := d.scene
	d.moveHandle = s.OnDocument(PhaseMove, d.armedMove)
	d.upHandle = s.OnDocument(PhaseUp, d.armedUp)
	d.cancelHandle = s.OnDocument(PhaseCancel, d.armedUp)
	if e.IsTouch() {
		e.PreventDefault()
	}
	d.element.SetAttr("aria-grabbed", "true")

	if d.opts.DragStartDelay > 0 {
		d.sess.delayTimer = s.AfterFunc(d.opts.DragStartDelay, func() {
			if d.state == DragArmed {
				d.startDrag(d.sess.lastEvent)
			}
		})
	}
}

func (d *Draggable) armedMove(e *PointerEvent) {
	if e.MultiTouch() {
		d.scene.logf("drag %s: ignoring multi-touch move", nodeLabel(d.element))
		return
	}
	p := Coordinates(e)
	d.sess.last = p
	d.sess.lastEvent = e
	d.sess.margin = d.sess.dragElement.Margin

	if distance(d.sess.start.PageX, d.sess.start.PageY, p.PageX, p.PageY) < d.opts.Distance {
		return
	}
	if d.sess.delayTimer.Pending() {
		// Moved too far before the delay elapsed.
		d.teardown()
		return
	}
	d.startDrag(e)
}

func (d *Draggable) armedUp(e *PointerEvent) {
	if e.MultiTouch() {
		return
	}
	d.teardown()
}

// startDrag runs the threshold crossing. It leaves the session armed when
// the scope is busy or the helper factory declines.
func (d *Draggable) startDrag(e *PointerEvent) {
	s := d.scene
	if !s.coordinator.available(d.opts.Scope, d) {
		s.logf("drag %s: scope %q busy", nodeLabel(d.element), d.opts.Scope)
		return
	}
	helper, auto := d.resolveHelper(e)
	if helper == nil {
		return
	}
	d.sess.helper = helper
	d.sess.autoHelper = auto

	var area *Node
	switch {
	case d.opts.DragAreaNode != nil:
		area = d.opts.DragAreaNode
	case d.opts.DragArea != "":
		area = s.root.Query(d.opts.DragArea)
	}
	p := Coordinates(e)
	d.sess.geom = captureGeometry(d.sess.dragElement, helper, area, p, d.opts.CursorAt)

	if d.OnDragStart != nil {
		d.OnDragStart(DragStartEvent{Event: e, Element: d.sess.dragElement, Target: e.Target, DragElement: helper})
	}
	if d.destroyed {
		return
	}
	s.emitInteraction(d.interaction(EventDragStart, e, helper))

	if d.opts.CursorAt != nil {
		left, top := d.sess.geom.clamp(p.PageX-d.sess.geom.diff.X, p.PageY-d.sess.geom.diff.Y)
		d.place(left, top)
	} else {
		d.place(d.sess.geom.offset.X, d.sess.geom.offset.Y)
	}
	if !helper.IsVisible() {
		s.logf("drag %s: helper not visible, cancelling", nodeLabel(d.element))
		d.discardHelper()
		d.teardown()
		return
	}

	d.sess.delayTimer.Stop()
	d.moveHandle.Remove()
	d.upHandle.Remove()
	d.cancelHandle.Remove()
	d.moveHandle = s.OnDocument(PhaseMove, d.dragMove)
	d.upHandle = s.OnDocument(PhaseUp, d.dragUp)
	d.cancelHandle = s.OnDocument(PhaseCancel, d.dragCancel)
	d.state = DragDragging

	s.coordinator.publish(d.opts.Scope, d.entry())
	d.sess.published = true
	s.logf("drag start %s scope=%q", nodeLabel(d.sess.dragElement), d.opts.Scope)
}

// resolveHelper returns the node to move and whether the engine attached
// it to the tree.
func (d *Draggable) resolveHelper(e *PointerEvent) (*Node, bool) {
	src := d.sess.dragElement
	if d.opts.Helper != nil {
		h := d.opts.Helper(d, e)
		if h == nil {
			return nil, false
		}
		if h.Parent == nil {
			d.scene.root.AddChild(h)
			return h, true
		}
		return h, false
	}
	if !d.opts.Clone {
		return src, false
	}
	c := src.Clone()
	c.RemoveAttr("aria-grabbed")
	c.AddClass("grip-helper")
	d.scene.root.AddChild(c)
	return c, true
}

// --- Dragging ---

func (d *Draggable) dragMove(e *PointerEvent) {
	if e.MultiTouch() {
		d.scene.logf("drag %s: ignoring multi-touch move", nodeLabel(d.element))
		return
	}
	p := Coordinates(e)
	d.sess.last = p
	g := &d.sess.geom

	left := p.PageX - g.diff.X
	top := p.PageY - g.diff.Y
	switch d.opts.Axis {
	case AxisX:
		top = g.offset.Y
	case AxisY:
		left = g.offset.X
	}
	left, top = g.clamp(left, top)
	d.place(left, top)

	d.updateHover(e)
	if d.destroyed {
		return
	}

	if d.OnDrag != nil {
		d.OnDrag(DragEvent{
			Event:   e,
			Element: d.sess.dragElement,
			Target:  e.Target,
			Helper:  d.sess.helper,
			Left:    left,
			Top:     top,
		})
	}
	if d.state == DragDragging {
		d.scene.emitInteraction(d.interaction(EventDrag, e, d.sess.helper))
	}
}

// updateHover raises out on the previous target and over on the new one
// when the target under the helper changes.
func (d *Draggable) updateHover(e *PointerEvent) {
	target, drop := d.scene.coordinator.ResolveTarget(e, d.opts.Scope, d.sess.helper)
	if drop == d.sess.hoverDrop {
		return
	}
	if d.sess.hoverDrop != nil {
		d.sess.hoverDrop.Out(e)
	}
	d.sess.hover, d.sess.hoverDrop = target, drop
	if drop != nil {
		entry := d.entry()
		drop.SetDragData(d.opts.Scope, entry)
		drop.Over(e, &entry)
	}
}

func (d *Draggable) dragUp(e *PointerEvent) {
	if e.MultiTouch() {
		d.scene.logf("drag %s: ignoring multi-touch end", nodeLabel(d.element))
		return
	}
	d.finish(e, true)
}

func (d *Draggable) dragCancel(e *PointerEvent) {
	if e.MultiTouch() {
		return
	}
	d.finish(e, false)
}

// finish ends a drag: dragStop, teardown, the final drop test, scope clear
// and helper cleanup, in that order.
func (d *Draggable) finish(e *PointerEvent, allowDrop bool) {
	s := d.scene
	sess := d.sess
	helper := sess.helper

	if d.OnDragStop != nil {
		d.OnDragStop(DragStopEvent{Event: e, Element: sess.dragElement, Target: e.Target, Helper: helper})
	}
	s.emitInteraction(d.interaction(EventDragStop, e, helper))
	if d.destroyed {
		return
	}
	d.teardown()

	dropped := false
	var drop DropTarget
	if allowDrop {
		_, drop = s.coordinator.ResolveTarget(e, d.opts.Scope, helper)
		if drop != nil {
			drop.MarkDragStopped()
			drop.SetDragData(d.opts.Scope, d.entryFor(sess))
			dropped = drop.Drop(e)
		}
	}
	if sess.hoverDrop != nil && (sess.hoverDrop != drop || !dropped) {
		sess.hoverDrop.Out(e)
	}
	s.coordinator.clear(d.opts.Scope, d)
	s.logf("drag stop %s dropped=%v", nodeLabel(sess.dragElement), dropped)

	switch {
	case !dropped && d.opts.Revert && d.opts.RevertDuration > 0:
		d.startRevert(sess)
	case !dropped && d.opts.Revert:
		sess.helper.SetPagePosition(sess.geom.offset.X, sess.geom.offset.Y)
		d.removeAutoHelper(sess)
	default:
		d.removeAutoHelper(sess)
	}
}

// startRevert animates the helper back over the source element, then
// removes it if the engine created it.
func (d *Draggable) startRevert(sess dragSession) {
	g := sess.geom
	toX, toY := g.local(g.offset.X, g.offset.Y)
	tw := TweenPosition(sess.helper, toX, toY, float32(d.opts.RevertDuration.Seconds()), ease.OutQuad)
	tw.OnComplete = func() {
		if d.revert == tw {
			d.revert = nil
		}
		d.removeAutoHelper(sess)
	}
	d.revert, d.revertSess = tw, sess
	d.scene.Animate(tw)
}

// stopRevert halts a running revert tween where it is and drops the helper
// it was returning, if the engine created it.
func (d *Draggable) stopRevert() {
	if d.revert == nil {
		return
	}
	d.revert.Stop()
	d.removeAutoHelper(d.revertSess)
	d.revert = nil
	d.revertSess = dragSession{}
}

// place moves the helper's border box to the page position.
func (d *Draggable) place(left, top float64) {
	x, y := d.sess.geom.local(left, top)
	d.sess.helper.X = x
	d.sess.helper.Y = y
}

// teardown removes session listeners and timers and returns to idle.
func (d *Draggable) teardown() {
	d.moveHandle.Remove()
	d.upHandle.Remove()
	d.cancelHandle.Remove()
	d.moveHandle, d.upHandle, d.cancelHandle = ListenerHandle{}, ListenerHandle{}, ListenerHandle{}
	d.sess.delayTimer.Stop()
	d.element.RemoveAttr("aria-grabbed")
	d.state = DragIdle
}

// discardHelper drops a helper created during a crossing that did not
// complete.
func (d *Draggable) discardHelper() {
	d.removeAutoHelper(d.sess)
	d.sess.helper = nil
	d.sess.autoHelper = false
}

func (d *Draggable) removeAutoHelper(sess dragSession) {
	if sess.autoHelper && sess.helper != nil {
		sess.helper.RemoveFromParent()
	}
}

func (d *Draggable) entry() DragEntry {
	return d.entryFor(d.sess)
}

func (d *Draggable) entryFor(sess dragSession) DragEntry {
	return DragEntry{Draggable: d, Helper: sess.helper, DraggedElement: sess.dragElement}
}

func (d *Draggable) interaction(typ EventType, e *PointerEvent, helper *Node) InteractionEvent {
	ev := interactionFor(typ, d.element, helper, e)
	ev.Scope = d.opts.Scope
	return ev
}

// Destroy detaches the draggable. It is safe mid-session: listeners and
// timers are removed, the scope is released and an engine-created helper
// is removed, without firing any further events.
func (d *Draggable) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.downHandle.Remove()
	if d.state != DragIdle {
		if d.sess.published {
			d.scene.coordinator.clear(d.opts.Scope, d)
		}
		d.removeAutoHelper(d.sess)
		d.teardown()
	}
	d.stopRevert()
}
