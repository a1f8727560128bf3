package grip

// --- Behaviour callback payloads ---

// DragStartEvent is delivered when a drag crosses its distance threshold.
type DragStartEvent struct {
	Event       *PointerEvent
	Element     *Node // the draggable element (or its DragTarget match)
	Target      *Node // node under the pointer, helper excluded
	DragElement *Node // the helper that will move
}

// DragEvent is delivered after every helper move during a drag.
type DragEvent struct {
	Event   *PointerEvent
	Element *Node
	Target  *Node
	Helper  *Node
	Left    float64 // helper border-box page position after clamping
	Top     float64
}

// DragStopEvent is delivered once when the pointer is released after a drag.
type DragStopEvent struct {
	Event   *PointerEvent
	Element *Node
	Target  *Node
	Helper  *Node
}

// OverEvent is delivered when a helper starts hovering an accepting drop target.
type OverEvent struct {
	Event    *PointerEvent
	Target   *Node
	DragData *DragEntry
}

// OutEvent is delivered when a hovered drop target stops being hovered.
type OutEvent struct {
	Event  *PointerEvent
	Target *Node
}

// DropEvent is delivered when a helper is released over an accepting drop target.
type DropEvent struct {
	Event          *PointerEvent
	Target         *Node
	DroppedElement *Node
	DragData       *DragEntry
}

// TapEvent is delivered for taps and double taps. TapCount counts
// consecutive taps inside the double-tap window; a double tap reports 2.
type TapEvent struct {
	Event    *PointerEvent
	TapCount int
}

// TapHoldEvent is delivered when a press is held past the tap-hold threshold.
type TapHoldEvent struct {
	Event *PointerEvent
}

// SwipeEvent is delivered on release after a fast movement.
type SwipeEvent struct {
	Event          *PointerEvent
	StartEvent     *PointerEvent
	StartX, StartY float64
	DistanceX      float64
	DistanceY      float64
	SwipeDirection Direction
	Velocity       float64 // pixels per millisecond
}

// ScrollEvent is delivered for every touch move. Distances are relative to
// the previous move, not the start point.
type ScrollEvent struct {
	Event           *PointerEvent
	StartEvent      *PointerEvent
	StartX, StartY  float64
	DistanceX       float64
	DistanceY       float64
	ScrollDirection Direction
	Velocity        float64 // pixels per millisecond
}

// --- Scene-wide observation ---

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, every semantic interaction event is forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the flattened, value-typed form of every behaviour
// event, used by the ECS bridge and scene-level observers.
type InteractionEvent struct {
	Type     EventType
	NodeID   uint32 // element the behaviour is attached to
	EntityID uint32
	TargetID uint32 // node under the pointer or drop target, 0 if none
	Scope    string

	PageX, PageY float64

	// Gesture fields (valid for EventSwipe, EventScroll)
	Direction Direction
	DistanceX float64
	DistanceY float64
	Velocity  float64

	// Tap fields (valid for EventTap, EventDoubleTap)
	TapCount int
}

type interactionHandler struct {
	id uint32
	fn func(InteractionEvent)
}

// CallbackHandle allows removing a registered scene-level observer.
type CallbackHandle struct {
	id    uint32
	scene *Scene
}

// Remove unregisters the observer so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.scene == nil {
		return
	}
	hs := h.scene.observers
	for i := range hs {
		if hs[i].id == h.id {
			out := make([]interactionHandler, 0, len(hs)-1)
			out = append(out, hs[:i]...)
			h.scene.observers = append(out, hs[i+1:]...)
			return
		}
	}
}

// OnInteraction registers a scene-level observer that receives every
// semantic event raised by any behaviour in the scene.
func (s *Scene) OnInteraction(fn func(InteractionEvent)) CallbackHandle {
	s.nextObserverID++
	s.observers = append(s.observers, interactionHandler{id: s.nextObserverID, fn: fn})
	return CallbackHandle{id: s.nextObserverID, scene: s}
}

// emitInteraction fans an event out to observers and the ECS bridge.
func (s *Scene) emitInteraction(ev InteractionEvent) {
	for _, h := range s.observers {
		h.fn(ev)
	}
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}

// interactionFor fills the fields shared by every event type.
func interactionFor(typ EventType, owner, target *Node, e *PointerEvent) InteractionEvent {
	ev := InteractionEvent{Type: typ}
	if owner != nil {
		ev.NodeID = owner.ID
		ev.EntityID = owner.EntityID
	}
	if target != nil {
		ev.TargetID = target.ID
	}
	if e != nil {
		p := Coordinates(e)
		ev.PageX, ev.PageY = p.PageX, p.PageY
	}
	return ev
}
