package grip

import (
	"encoding/json"
	"fmt"
	"time"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty"`
	Touch  int     `json:"touch,omitempty"` // finger id for touch steps
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"click": true, "drag": true, "press": true, "move": true, "release": true,
	"tap": true, "swipe": true, "touchstart": true, "touchmove": true,
	"touchend": true, "touchcancel": true, "wait": true, "sleep": true,
}

// TestRunner sequences injected input events and clock advances across
// updates for scripted interaction tests. Attach to a Scene via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Update before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one update. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "tap":
		s.InjectTouchStart(st.Touch, st.X, st.Y)
		s.InjectTouchEnd(st.Touch, st.X, st.Y)
	case "swipe":
		s.injectPath(PointerTouch, st.Touch, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touchstart":
		s.InjectTouchStart(st.Touch, st.X, st.Y)
	case "touchmove":
		s.InjectTouchMove(st.Touch, st.X, st.Y)
	case "touchend":
		s.InjectTouchEnd(st.Touch, st.X, st.Y)
	case "touchcancel":
		s.InjectTouchCancel(st.Touch, st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "sleep":
		// Only a manual clock can be moved; a wall clock just keeps going.
		if mc, ok := s.clock.(*ManualClock); ok {
			mc.Advance(time.Duration(st.Ms) * time.Millisecond)
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
