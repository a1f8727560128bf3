package grip

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultScope is the drag scope used when none is configured.
const DefaultScope = "default"

// HelperFunc builds the node moved during a drag. Returning nil aborts the
// threshold crossing; the session stays armed and the next move retries.
type HelperFunc func(d *Draggable, e *PointerEvent) *Node

// DragOptions configures a Draggable.
type DragOptions struct {
	// Handle restricts drag starts to pointer-downs inside elements matching
	// this selector (delegated from the draggable element).
	Handle string `yaml:"handle,omitempty"`
	// Abort cancels a pointer-down whose target is inside a match.
	Abort string `yaml:"abort,omitempty"`
	// DragTarget moves the closest ancestor of the pointer target matching
	// this selector instead of the draggable element itself.
	DragTarget string `yaml:"dragTarget,omitempty"`
	// DragArea is a selector for the element that bounds the helper.
	DragArea string `yaml:"dragArea,omitempty"`
	// DragAreaNode bounds the helper directly; takes precedence over DragArea.
	DragAreaNode *Node `yaml:"-"`

	Scope    string  `yaml:"scope,omitempty"`
	Distance float64 `yaml:"distance,omitempty"`
	Clone    bool    `yaml:"clone"`
	Axis     Axis    `yaml:"axis,omitempty"`
	// CursorAt pins the helper's top-left at this offset from the pointer.
	CursorAt *Vec2 `yaml:"cursorAt,omitempty"`

	DragStartDelay time.Duration `yaml:"dragStartDelay,omitempty"`
	Revert         bool          `yaml:"revert,omitempty"`
	RevertDuration time.Duration `yaml:"revertDuration,omitempty"`

	Helper HelperFunc `yaml:"-"`
}

// DefaultDragOptions returns the defaults: scope "default", a one pixel
// start distance and a cloned helper.
func DefaultDragOptions() DragOptions {
	return DragOptions{
		Scope:          DefaultScope,
		Distance:       1,
		Clone:          true,
		RevertDuration: 250 * time.Millisecond,
	}
}

// DropOptions configures a Droppable.
type DropOptions struct {
	// Accept is a selector the helper must match; empty accepts anything.
	Accept string `yaml:"accept,omitempty"`
	Scope  string `yaml:"scope,omitempty"`
}

// DefaultDropOptions returns the defaults: scope "default", accept all.
func DefaultDropOptions() DropOptions {
	return DropOptions{Scope: DefaultScope}
}

// TouchOptions configures a Touch recognizer.
type TouchOptions struct {
	TapHoldThreshold       time.Duration `yaml:"tapHoldThreshold,omitempty"`
	DoubleTapThreshold     time.Duration `yaml:"doubleTapThreshold,omitempty"`
	SwipeThresholdDistance float64       `yaml:"swipeThresholdDistance,omitempty"`
}

// DefaultTouchOptions returns the defaults: 750ms tap-hold, 500ms
// double-tap window and a 50 pixel swipe distance.
func DefaultTouchOptions() TouchOptions {
	return TouchOptions{
		TapHoldThreshold:       750 * time.Millisecond,
		DoubleTapThreshold:     500 * time.Millisecond,
		SwipeThresholdDistance: 50,
	}
}

// Config groups behaviour defaults loaded from a YAML file.
type Config struct {
	Drag  DragOptions  `yaml:"drag"`
	Drop  DropOptions  `yaml:"drop"`
	Touch TouchOptions `yaml:"touch"`
	Debug bool         `yaml:"debug,omitempty"`
}

// DefaultConfig returns a Config holding every default.
func DefaultConfig() Config {
	return Config{
		Drag:  DefaultDragOptions(),
		Drop:  DefaultDropOptions(),
		Touch: DefaultTouchOptions(),
	}
}

// LoadConfig parses YAML on top of DefaultConfig. Keys absent from the
// document keep their defaults. Durations use Go syntax ("750ms").
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML config file. A missing file
// yields DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return LoadConfig(data)
}

func (c *Config) validate() error {
	if c.Drag.Distance < 0 {
		return fmt.Errorf("drag.distance must not be negative (got %v)", c.Drag.Distance)
	}
	if c.Touch.SwipeThresholdDistance < 0 {
		return fmt.Errorf("touch.swipeThresholdDistance must not be negative (got %v)", c.Touch.SwipeThresholdDistance)
	}
	if c.Touch.TapHoldThreshold <= 0 || c.Touch.DoubleTapThreshold <= 0 {
		return fmt.Errorf("touch thresholds must be positive")
	}
	if c.Drag.Scope == "" {
		c.Drag.Scope = DefaultScope
	}
	if c.Drop.Scope == "" {
		c.Drop.Scope = DefaultScope
	}
	return nil
}
