package grip

import "time"

// Clock supplies the current time to a Scene. Timers, gesture thresholds
// and event timestamps all read from the scene's clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock that only moves when told to. Use it for
// deterministic tests and scripted replays.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock starting at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *ManualClock) Set(t time.Time) {
	c.now = t
}
