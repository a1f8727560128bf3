// Package ebitenhost runs a grip scene inside an [Ebitengine] window:
// mouse and touch input are polled each tick and forwarded to the scene,
// and the element tree is drawn as flat boxes.
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/grip"
)

// Input translates ebiten's polled input state into scene pointer events.
// Mouse events are dispatched for the left button; touches keep their
// ebiten TouchID as the grip touch id.
type Input struct {
	lastX, lastY int
	seen         bool

	touches  map[ebiten.TouchID]grip.TouchPoint
	idBuf    []ebiten.TouchID
	pressBuf []ebiten.TouchID
	relBuf   []ebiten.TouchID
}

// Poll dispatches every input change since the previous call.
func (in *Input) Poll(s *grip.Scene) {
	in.pollMouse(s)
	in.pollTouches(s)
}

func (in *Input) pollMouse(s *grip.Scene) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	moved := !in.seen || mx != in.lastX || my != in.lastY
	in.lastX, in.lastY, in.seen = mx, my, true

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.DispatchMouse(grip.PhaseDown, x, y)
		return
	}
	if moved {
		s.DispatchMouse(grip.PhaseMove, x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.DispatchMouse(grip.PhaseUp, x, y)
	}
}

func (in *Input) pollTouches(s *grip.Scene) {
	if in.touches == nil {
		in.touches = make(map[ebiten.TouchID]grip.TouchPoint)
	}

	in.pressBuf = inpututil.AppendJustPressedTouchIDs(in.pressBuf[:0])
	for _, id := range in.pressBuf {
		tp := touchPoint(id)
		in.touches[id] = tp
		s.DispatchTouch(grip.PhaseDown, tp)
	}

	in.idBuf = ebiten.AppendTouchIDs(in.idBuf[:0])
	for _, id := range in.idBuf {
		prev, ok := in.touches[id]
		if !ok {
			continue
		}
		tp := touchPoint(id)
		if tp.ClientX == prev.ClientX && tp.ClientY == prev.ClientY {
			continue
		}
		in.touches[id] = tp
		s.DispatchTouch(grip.PhaseMove, tp)
	}

	// Released touches no longer report a position; use the last one seen.
	in.relBuf = inpututil.AppendJustReleasedTouchIDs(in.relBuf[:0])
	for _, id := range in.relBuf {
		tp, ok := in.touches[id]
		if !ok {
			continue
		}
		delete(in.touches, id)
		s.DispatchTouch(grip.PhaseUp, tp)
	}
}

func touchPoint(id ebiten.TouchID) grip.TouchPoint {
	x, y := ebiten.TouchPosition(id)
	return grip.TouchPoint{ID: int(id), ClientX: float64(x), ClientY: float64(y)}
}
