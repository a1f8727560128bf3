package grip

import (
	"math"
	"time"
)

// touchSession is the state of one press on a Touch element.
type touchSession struct {
	start      Point
	startTime  time.Time
	startEvent *PointerEvent
	lastMoved  Point

	hLocked, vLocked bool
	scrollDirection  Direction
	movedDirection   Direction
	distanceX        float64
	distanceY        float64

	holdTimer *Timer
}

// deferredTap is a single tap held back while a second tap may still
// turn it into a double tap.
type deferredTap struct {
	event *PointerEvent
	count int
}

// Touch recognizes tap, double tap, tap-hold, swipe and scroll gestures on
// an element. Callbacks left nil are skipped; leaving OnDoubleTap nil makes
// taps fire immediately instead of waiting out the double-tap window.
type Touch struct {
	OnTap       func(TapEvent)
	OnDoubleTap func(TapEvent)
	OnTapHold   func(TapHoldEvent)
	OnSwipe     func(SwipeEvent)
	OnScroll    func(ScrollEvent)

	scene   *Scene
	element *Node
	opts    TouchOptions

	sess   touchSession
	active bool

	tapCount    int
	lastTapTime time.Time
	tapTimer    *Timer
	pendingTap  deferredTap

	downHandle   ListenerHandle
	moveHandle   ListenerHandle
	upHandle     ListenerHandle
	cancelHandle ListenerHandle
	destroyed    bool
}

// NewTouch attaches a gesture recognizer to el. Zero thresholds in opts
// take the defaults from DefaultTouchOptions.
func NewTouch(s *Scene, el *Node, opts TouchOptions) *Touch {
	def := DefaultTouchOptions()
	if opts.TapHoldThreshold <= 0 {
		opts.TapHoldThreshold = def.TapHoldThreshold
	}
	if opts.DoubleTapThreshold <= 0 {
		opts.DoubleTapThreshold = def.DoubleTapThreshold
	}
	if opts.SwipeThresholdDistance <= 0 {
		opts.SwipeThresholdDistance = def.SwipeThresholdDistance
	}
	t := &Touch{scene: s, element: el, opts: opts}
	t.downHandle = s.On(el, PhaseDown, t.startEvent)
	return t
}

// Element returns the element the recognizer is attached to.
func (t *Touch) Element() *Node { return t.element }

// Active reports whether a press is in progress.
func (t *Touch) Active() bool { return t.active }

func (t *Touch) startEvent(e *PointerEvent) {
	if t.destroyed || e.MultiTouch() {
		return
	}
	if t.active {
		t.endSession()
	}
	p := Coordinates(e)
	t.sess = touchSession{
		start:      p,
		startTime:  e.Time,
		startEvent: e,
		lastMoved:  p,
	}
	t.active = true
	t.sess.holdTimer = t.scene.AfterFunc(t.opts.TapHoldThreshold, t.tapHoldEvent)

	s := t.scene
	t.moveHandle = s.On(t.element, PhaseMove, t.moveEvent)
	t.upHandle = s.On(t.element, PhaseUp, t.endEvent)
	t.cancelHandle = s.On(t.element, PhaseCancel, t.cancelEvent)
}

func (t *Touch) moveEvent(e *PointerEvent) {
	if !t.active || e.MultiTouch() {
		return
	}
	p := Coordinates(e)
	if p.ClientX == t.sess.start.ClientX && p.ClientY == t.sess.start.ClientY {
		return
	}
	t.sess.holdTimer.Stop()
	t.calcScrollPoints(p)

	if t.OnScroll != nil {
		t.OnScroll(ScrollEvent{
			Event:           e,
			StartEvent:      t.sess.startEvent,
			StartX:          t.sess.start.ClientX,
			StartY:          t.sess.start.ClientY,
			DistanceX:       t.sess.distanceX,
			DistanceY:       t.sess.distanceY,
			ScrollDirection: t.sess.scrollDirection,
			Velocity:        t.velocity(p, e.Time),
		})
	}
	ev := interactionFor(EventScroll, t.element, e.Target, e)
	ev.Direction = t.sess.scrollDirection
	ev.DistanceX, ev.DistanceY = t.sess.distanceX, t.sess.distanceY
	ev.Velocity = t.velocity(p, e.Time)
	t.scene.emitInteraction(ev)

	t.sess.lastMoved = p
}

// calcScrollPoints measures the step from the last move and locks the
// scroll axis to whichever axis moved more on the first step.
func (t *Touch) calcScrollPoints(p Point) {
	s := &t.sess
	s.distanceX = math.Abs(p.ClientX - s.lastMoved.ClientX)
	s.distanceY = math.Abs(p.ClientY - s.lastMoved.ClientY)
	if (s.distanceX > s.distanceY || s.hLocked) && !s.vLocked {
		if p.ClientX < s.lastMoved.ClientX {
			s.scrollDirection = DirectionLeft
		} else {
			s.scrollDirection = DirectionRight
		}
		s.hLocked = true
	} else {
		if p.ClientY < s.lastMoved.ClientY {
			s.scrollDirection = DirectionUp
		} else {
			s.scrollDirection = DirectionDown
		}
		s.vLocked = true
	}
}

// tapHoldEvent ends the press early: no tap, swipe or scroll follows.
func (t *Touch) tapHoldEvent() {
	if !t.active {
		return
	}
	e := t.sess.startEvent
	t.unwire()
	t.active = false
	t.tapCount = 0
	t.scene.logf("tapHold %s", nodeLabel(t.element))
	if t.OnTapHold != nil {
		t.OnTapHold(TapHoldEvent{Event: e})
	}
	t.scene.emitInteraction(interactionFor(EventTapHold, t.element, e.Target, e))
}

func (t *Touch) endEvent(e *PointerEvent) {
	if !t.active || e.MultiTouch() {
		return
	}
	t.sess.holdTimer.Stop()
	p := Coordinates(e)
	t.unwire()
	t.active = false

	if t.moved(p) {
		t.swipe(e, p)
		return
	}
	t.tap(e)
}

// cancelEvent abandons the press. A fast movement still counts as a swipe
// but a cancelled press is never a tap.
func (t *Touch) cancelEvent(e *PointerEvent) {
	if !t.active || e.MultiTouch() {
		return
	}
	t.sess.holdTimer.Stop()
	t.tapTimer.Stop()
	t.tapCount = 0
	p := Coordinates(e)
	t.unwire()
	t.active = false
	if t.moved(p) {
		t.swipe(e, p)
	}
}

func (t *Touch) moved(p Point) bool {
	dx := math.Floor(math.Abs(p.ClientX - t.sess.start.ClientX))
	dy := math.Floor(math.Abs(p.ClientY - t.sess.start.ClientY))
	return dx > 1 || dy > 1
}

func (t *Touch) tap(e *PointerEvent) {
	now := e.Time
	within := !t.lastTapTime.IsZero() && now.Sub(t.lastTapTime) <= t.opts.DoubleTapThreshold
	if within {
		t.tapCount++
	} else {
		t.tapCount = 1
	}
	t.lastTapTime = now

	if t.OnDoubleTap == nil {
		t.fireTap(e, t.tapCount)
		return
	}

	if t.tapTimer.Pending() {
		t.tapTimer.Stop()
		if within {
			count := t.tapCount
			t.tapCount = 0
			t.lastTapTime = time.Time{}
			t.OnDoubleTap(TapEvent{Event: e, TapCount: count})
			ev := interactionFor(EventDoubleTap, t.element, e.Target, e)
			ev.TapCount = count
			t.scene.emitInteraction(ev)
			return
		}
		// The window has passed but Update has not fired the deferred
		// tap yet; deliver it now so it is not lost.
		t.fireTap(t.pendingTap.event, t.pendingTap.count)
	}

	count := t.tapCount
	t.pendingTap = deferredTap{event: e, count: count}
	t.tapTimer = t.scene.AfterFunc(t.opts.DoubleTapThreshold, func() {
		t.fireTap(e, count)
	})
}

func (t *Touch) fireTap(e *PointerEvent, count int) {
	if t.OnTap != nil {
		t.OnTap(TapEvent{Event: e, TapCount: count})
	}
	ev := interactionFor(EventTap, t.element, e.Target, e)
	ev.TapCount = count
	t.scene.emitInteraction(ev)
}

func (t *Touch) swipe(e *PointerEvent, p Point) {
	s := &t.sess
	s.distanceX = math.Abs(p.ClientX - s.start.ClientX)
	s.distanceY = math.Abs(p.ClientY - s.start.ClientY)
	if s.distanceX > s.distanceY {
		if p.ClientX > s.start.ClientX {
			s.movedDirection = DirectionRight
		} else {
			s.movedDirection = DirectionLeft
		}
	} else {
		if p.ClientY < s.start.ClientY {
			s.movedDirection = DirectionUp
		} else {
			s.movedDirection = DirectionDown
		}
	}

	vertical := s.movedDirection.Vertical()
	threshold := t.opts.SwipeThresholdDistance
	if !(vertical && s.distanceY > threshold) && !(!vertical && s.distanceX > threshold) {
		return
	}
	if !atScrollBoundary(t.element, vertical) {
		return
	}

	v := t.velocity(p, e.Time)
	if t.OnSwipe != nil {
		t.OnSwipe(SwipeEvent{
			Event:          e,
			StartEvent:     s.startEvent,
			StartX:         s.start.ClientX,
			StartY:         s.start.ClientY,
			DistanceX:      s.distanceX,
			DistanceY:      s.distanceY,
			SwipeDirection: s.movedDirection,
			Velocity:       v,
		})
	}
	ev := interactionFor(EventSwipe, t.element, e.Target, e)
	ev.Direction = s.movedDirection
	ev.DistanceX, ev.DistanceY = s.distanceX, s.distanceY
	ev.Velocity = v
	t.scene.emitInteraction(ev)
}

// atScrollBoundary reports whether n cannot absorb a gesture on the axis:
// either it has nothing to scroll, or it already sits at the start or the
// end of its range.
func atScrollBoundary(n *Node, vertical bool) bool {
	if vertical {
		if n.ScrollHeight() <= n.Height {
			return true
		}
		return n.ScrollY == 0 || n.Height+n.ScrollY >= n.ScrollHeight()
	}
	if n.ScrollWidth() <= n.Width {
		return true
	}
	return n.ScrollX == 0 || n.Width+n.ScrollX >= n.ScrollWidth()
}

// velocity is the straight-line distance from the start point in pixels
// per millisecond.
func (t *Touch) velocity(p Point, now time.Time) float64 {
	ms := float64(now.Sub(t.sess.startTime)) / float64(time.Millisecond)
	if ms <= 0 {
		return 0
	}
	dx := p.ClientX - t.sess.start.ClientX
	dy := p.ClientY - t.sess.start.ClientY
	return math.Hypot(dx, dy) / ms
}

func (t *Touch) unwire() {
	t.moveHandle.Remove()
	t.upHandle.Remove()
	t.cancelHandle.Remove()
	t.moveHandle, t.upHandle, t.cancelHandle = ListenerHandle{}, ListenerHandle{}, ListenerHandle{}
}

// endSession drops an unfinished press without firing anything.
func (t *Touch) endSession() {
	t.sess.holdTimer.Stop()
	t.unwire()
	t.active = false
}

// Destroy detaches the recognizer and cancels every pending timer. Safe to
// call more than once.
func (t *Touch) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.downHandle.Remove()
	t.endSession()
	t.tapTimer.Stop()
}
