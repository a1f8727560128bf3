package grip

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via TweenPosition or TweenScroll and either call Update(dt)
// yourself or hand it to Scene.Animate. If the target node is disposed,
// the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	// OnComplete runs once, on the Update that finishes the group.
	OnComplete func()
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done && g.OnComplete != nil {
		g.OnComplete()
	}
}

// Stop ends the group where it is without running OnComplete.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given local coordinates over duration seconds using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}

// TweenScroll creates a TweenGroup that animates node.ScrollX and
// node.ScrollY to the given offsets.
func TweenScroll(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.ScrollX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScrollY), float32(toY), duration, fn)
	g.fields[0] = &node.ScrollX
	g.fields[1] = &node.ScrollY
	return g
}

// Animate registers g to be advanced by Scene.Update. Finished groups are
// dropped automatically.
func (s *Scene) Animate(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// updateTweens advances running groups and compacts the list in place.
func (s *Scene) updateTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	// Groups added by OnComplete callbacks start on the next Update.
	n := len(s.tweens)
	for i := 0; i < n; i++ {
		s.tweens[i].Update(dt)
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}
