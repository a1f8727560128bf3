package grip

import (
	"io"
	"os"
	"time"
)

// Scene is the top-level object that owns the element tree, the viewport,
// the listener registry, pending timers and the drag coordinator. All
// methods must be called from a single goroutine.
type Scene struct {
	root     *Node
	viewport Viewport
	store    EntityStore
	debug    bool
	logOut   io.Writer

	// Time
	clock    Clock
	timers   timerQueue
	lastTick time.Time
	tweens   []*TweenGroup

	// Input state
	listeners    listenerRegistry
	touchTargets map[int]*Node
	hitBuf       []hitEntry

	// Behaviours
	coordinator    *Coordinator
	observers      []interactionHandler
	nextObserverID uint32

	// Synthetic input
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner
}

// NewScene creates a new scene with a pre-created root element. The root
// is a "body" element with no size; give it one (SetSize) if it should be
// hit-testable itself.
func NewScene() *Scene {
	root := NewElement("body", "root")
	s := &Scene{
		root:   root,
		clock:  SystemClock,
		logOut: os.Stderr,
	}
	s.coordinator = newCoordinator(s)
	s.lastTick = s.clock.Now()
	return s
}

// Root returns the scene's root element.
func (s *Scene) Root() *Node {
	return s.root
}

// Viewport returns the scene's viewport. Mutating it scrolls the document.
func (s *Scene) Viewport() *Viewport {
	return &s.viewport
}

// Coordinator returns the scene's drag coordinator.
func (s *Scene) Coordinator() *Coordinator {
	return s.coordinator
}

// Now returns the current time on the scene's clock.
func (s *Scene) Now() time.Time {
	return s.clock.Now()
}

// SetClock replaces the scene's clock. Pending timers keep their absolute
// due times.
func (s *Scene) SetClock(c Clock) {
	if c == nil {
		c = SystemClock
	}
	s.clock = c
	s.lastTick = c.Now()
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// interaction transitions are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	globalLogOut = s.logOut
}

// SetLogOutput redirects debug logging and the tree warnings. A nil writer
// restores stderr.
func (s *Scene) SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	s.logOut = w
	globalLogOut = w
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// Update advances the scene by one tick: the test runner queues its next
// step, one injected pointer event is dispatched, due timers fire, and
// running tweens advance by the clock time elapsed since the last Update.
func (s *Scene) Update() {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	now := s.clock.Now()
	s.timers.fireDue(now)

	dt := float32(now.Sub(s.lastTick).Seconds())
	s.lastTick = now
	if dt < 0 {
		dt = 0
	}
	s.updateTweens(dt)
}

// PendingTimers reports how many timers are waiting to fire.
func (s *Scene) PendingTimers() int {
	return s.timers.Len()
}
