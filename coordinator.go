package grip

import "sort"

// DragEntry describes the drag currently occupying a scope.
type DragEntry struct {
	Draggable      *Draggable
	Helper         *Node // node being moved
	DraggedElement *Node // node the drag started from
}

// DropTarget is the capability a drop target exposes to the drag engine.
// *Droppable implements it; custom targets can be registered with
// Coordinator.RegisterDropTarget.
type DropTarget interface {
	Element() *Node
	Scope() string
	// Accepts reports whether a helper may hover or drop on this target.
	Accepts(helper *Node) bool
	// Over and Out are edge-triggered: repeated calls without a change in
	// hover state do nothing.
	Over(e *PointerEvent, entry *DragEntry)
	Out(e *PointerEvent)
	// Drop completes a drop if every condition holds and reports whether
	// it did. It is a no-op unless MarkDragStopped was called first.
	Drop(e *PointerEvent) bool
	SetDragData(scope string, entry DragEntry)
	MarkDragStopped()
}

// Coordinator owns the per-scope drag registry and the node to drop target
// side table. Each Scene has exactly one.
type Coordinator struct {
	scene   *Scene
	scopes  map[string]*DragEntry
	targets map[*Node]DropTarget
}

func newCoordinator(s *Scene) *Coordinator {
	return &Coordinator{
		scene:   s,
		scopes:  make(map[string]*DragEntry),
		targets: make(map[*Node]DropTarget),
	}
}

// register makes sure a scope has an entry. Entries are never deleted.
func (c *Coordinator) register(scope string) {
	if _, ok := c.scopes[scope]; !ok {
		c.scopes[scope] = &DragEntry{}
	}
}

// Entry returns the active drag for scope, or nil when the scope is free.
func (c *Coordinator) Entry(scope string) *DragEntry {
	e := c.scopes[scope]
	if e == nil || e.Draggable == nil {
		return nil
	}
	return e
}

// Scopes returns every known scope name in sorted order.
func (c *Coordinator) Scopes() []string {
	out := make([]string, 0, len(c.scopes))
	for k := range c.scopes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// available reports whether d may publish into scope.
func (c *Coordinator) available(scope string, d *Draggable) bool {
	e := c.scopes[scope]
	return e == nil || e.Draggable == nil || e.Draggable == d
}

func (c *Coordinator) publish(scope string, entry DragEntry) {
	c.register(scope)
	*c.scopes[scope] = entry
}

// clear empties scope if d owns it.
func (c *Coordinator) clear(scope string, d *Draggable) {
	if e := c.scopes[scope]; e != nil && e.Draggable == d {
		*e = DragEntry{}
	}
}

// RegisterDropTarget attaches t to its element. A later registration for
// the same element replaces the earlier one.
func (c *Coordinator) RegisterDropTarget(t DropTarget) {
	c.register(t.Scope())
	c.targets[t.Element()] = t
}

// UnregisterDropTarget detaches whatever target is registered on n.
func (c *Coordinator) UnregisterDropTarget(n *Node) {
	delete(c.targets, n)
}

// DropTargetOf returns the target registered on n, or nil.
func (c *Coordinator) DropTargetOf(n *Node) DropTarget {
	return c.targets[n]
}

// ResolveTarget finds the drop target under the pointer for a helper in
// scope. When the raw event target is the helper (or inside it), or the
// event is a touch event whose target is captured, the helper is hidden
// while the point is re-queried and its visibility is restored afterwards.
// The walk then climbs from the resolved node to the nearest registered
// target in the same scope that accepts the helper.
func (c *Coordinator) ResolveTarget(e *PointerEvent, scope string, helper *Node) (*Node, DropTarget) {
	target := e.Target
	if helper != nil && (e.IsTouch() || helper.Contains(target)) {
		target = c.pointUnder(e, helper)
	}
	for n := target; n != nil; n = n.Parent {
		t := c.targets[n]
		if t == nil || t.Scope() != scope {
			continue
		}
		if !t.Accepts(helper) {
			continue
		}
		return n, t
	}
	return nil, nil
}

// pointUnder returns the topmost node at the event's position with helper
// hidden.
func (c *Coordinator) pointUnder(e *PointerEvent, helper *Node) *Node {
	p := Coordinates(e)
	prev := helper.Visible
	helper.Visible = false
	n := c.scene.ElementFromPoint(p.ClientX, p.ClientY)
	helper.Visible = prev
	return n
}
