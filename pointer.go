package grip

import "time"

// Phase is the stage of the pointer lifecycle an event belongs to.
type Phase uint8

const (
	PhaseDown   Phase = iota // button pressed or finger placed
	PhaseMove                // pointer moved
	PhaseUp                  // button released or finger lifted
	PhaseCancel              // the host aborted the touch sequence
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerKind distinguishes mouse input from touch input.
type PointerKind uint8

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// TouchPoint is one finger in a touch event.
type TouchPoint struct {
	ID               int
	ClientX, ClientY float64
	PageX, PageY     float64
}

// PointerEvent is a raw pointer event as delivered to listeners. Touch
// events list the fingers that changed in ChangedTouches; the event's own
// coordinates mirror the first of them.
type PointerEvent struct {
	Phase Phase
	Kind  PointerKind
	Time  time.Time

	ClientX, ClientY float64
	PageX, PageY     float64

	ChangedTouches []TouchPoint

	// Target is the node the event was dispatched to. CurrentTarget is the
	// node whose listener is running (the matched element for delegated
	// listeners, nil for document listeners).
	Target        *Node
	CurrentTarget *Node

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event as handled so hosts skip their default
// action (scrolling on touch).
func (e *PointerEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation prevents the event from reaching listeners further up
// the tree or on the document.
func (e *PointerEvent) StopPropagation() {
	e.stopped = true
}

// IsTouch reports whether the event came from a touch surface.
func (e *PointerEvent) IsTouch() bool {
	return e.Kind == PointerTouch
}

// MultiTouch reports whether more than one finger changed in this event.
func (e *PointerEvent) MultiTouch() bool {
	return len(e.ChangedTouches) > 1
}

// Point is a normalized pointer reading.
type Point struct {
	PageX, PageY     float64
	ClientX, ClientY float64
}

// Coordinates returns the pointer reading for e: the first changed touch
// point for touch events, otherwise the event's own coordinates.
func Coordinates(e *PointerEvent) Point {
	if len(e.ChangedTouches) > 0 {
		t := e.ChangedTouches[0]
		return Point{PageX: t.PageX, PageY: t.PageY, ClientX: t.ClientX, ClientY: t.ClientY}
	}
	return Point{PageX: e.PageX, PageY: e.PageY, ClientX: e.ClientX, ClientY: e.ClientY}
}
