package main

import (
	"fmt"
	"io"
	"time"

	"github.com/phanxgames/grip"
)

const (
	replayFrame     = time.Second / 60
	replayMaxFrames = 100000
)

// replay runs script against a scene built from markup on a manual clock,
// one frame per Update, and writes every interaction event except drag and
// scroll moves to w. Pending timers are flushed after the last step.
func replay(w io.Writer, cfg grip.Config, markup string, script []byte) error {
	runner, err := grip.LoadTestScript(script)
	if err != nil {
		return err
	}
	s, b, err := buildScene(cfg, markup)
	if err != nil {
		return err
	}
	defer b.destroy()

	clock := grip.NewManualClock()
	s.SetClock(clock)
	s.SetTestRunner(runner)

	label := func(id uint32) string {
		if id == 0 {
			return "-"
		}
		if n := findNode(s.Root(), id); n != nil && n.Name != "" {
			return n.Name
		}
		return "?"
	}

	var werr error
	frame := 0
	s.OnInteraction(func(ev grip.InteractionEvent) {
		if werr != nil || ev.Type == grip.EventDrag || ev.Type == grip.EventScroll {
			return
		}
		line := fmt.Sprintf("%05d %-9s %s", frame, ev.Type, label(ev.NodeID))
		switch ev.Type {
		case grip.EventSwipe:
			line += fmt.Sprintf(" dir=%s dx=%.0f dy=%.0f", ev.Direction, ev.DistanceX, ev.DistanceY)
		case grip.EventTap, grip.EventDoubleTap:
			line += fmt.Sprintf(" count=%d", ev.TapCount)
		case grip.EventDrop, grip.EventOver:
			line += " helper=" + label(ev.TargetID)
		}
		_, werr = fmt.Fprintln(w, line)
	})

	for ; frame < replayMaxFrames; frame++ {
		if runner.Done() && s.PendingInjections() == 0 && s.PendingTimers() == 0 {
			return werr
		}
		clock.Advance(replayFrame)
		s.Update()
	}
	return fmt.Errorf("replay: script did not finish within %d frames", replayMaxFrames)
}

func findNode(n *grip.Node, id uint32) *grip.Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children() {
		if found := findNode(c, id); found != nil {
			return found
		}
	}
	return nil
}
