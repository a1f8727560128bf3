package grip

import (
	"fmt"
	"strings"
)

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The origin is at the top-left, with Y
// increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Edges holds per-side lengths for the box model (margin, border, padding).
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns Left+Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top+Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Overflow controls whether a node scrolls its content.
type Overflow uint8

const (
	OverflowVisible Overflow = iota // content is not clipped and never scrolls
	OverflowHidden                  // content is clipped, no user scrolling
	OverflowAuto                    // scrolls when content exceeds the box
	OverflowScroll                  // always scrollable
)

// Scrollable reports whether the overflow mode lets the user scroll.
func (o Overflow) Scrollable() bool {
	return o == OverflowAuto || o == OverflowScroll
}

// Axis restricts dragging to one direction.
type Axis uint8

const (
	AxisBoth Axis = iota // free movement
	AxisX                // horizontal only
	AxisY                // vertical only
)

var axisNames = [...]string{AxisBoth: "", AxisX: "x", AxisY: "y"}

// MarshalText encodes the axis as "", "x" or "y".
func (a Axis) MarshalText() ([]byte, error) {
	if int(a) >= len(axisNames) {
		return nil, fmt.Errorf("invalid axis %d", a)
	}
	return []byte(axisNames[a]), nil
}

// UnmarshalText decodes "", "both", "x" or "y".
func (a *Axis) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "", "both":
		*a = AxisBoth
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	default:
		return fmt.Errorf("invalid axis %q", b)
	}
	return nil
}

// Direction is the dominant direction of a swipe or scroll.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "Up"
	case DirectionDown:
		return "Down"
	case DirectionLeft:
		return "Left"
	case DirectionRight:
		return "Right"
	default:
		return ""
	}
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == DirectionUp || d == DirectionDown
}

// EventType identifies a kind of semantic interaction event.
type EventType uint8

const (
	EventDragStart EventType = iota // helper created, drag begins
	EventDrag                       // helper moved during a drag
	EventDragStop                   // pointer released after dragging
	EventOver                       // helper entered an accepting drop target
	EventOut                        // helper left a drop target
	EventDrop                       // helper released over an accepting drop target
	EventTap                        // press and release without movement
	EventDoubleTap                  // two taps inside the double-tap window
	EventTapHold                    // press held past the tap-hold threshold
	EventSwipe                      // fast movement past the swipe threshold
	EventScroll                     // incremental movement during a touch
)

var eventTypeNames = [...]string{
	EventDragStart: "dragStart",
	EventDrag:      "drag",
	EventDragStop:  "dragStop",
	EventOver:      "over",
	EventOut:       "out",
	EventDrop:      "drop",
	EventTap:       "tap",
	EventDoubleTap: "doubleTap",
	EventTapHold:   "tapHold",
	EventSwipe:     "swipe",
	EventScroll:    "scroll",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}
