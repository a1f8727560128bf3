package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/phanxgames/grip"
)

// demoMarkup is loaded when no markup file is given.
const demoMarkup = `
<div id="board" x="0" y="0" width="640" height="480" border="4" color="#2d2a3e">
  <div id="red" class="draggable card" drag-area="#board" x="16" y="16" width="96" height="64" color="#c0392b"></div>
  <div id="blue" class="draggable card" drag-area="#board" revert="true" x="16" y="112" width="96" height="64" color="#2980b9"></div>
  <div id="ghost" class="draggable" scope="other" x="16" y="208" width="96" height="64" color="#7f8c8d"></div>
  <div id="bin" class="droppable" accept=".card" x="400" y="16" width="200" height="200" color="#27ae60"></div>
  <div id="pad" class="touch" x="16" y="300" width="300" height="150" color="#8e44ad"></div>
</div>
`

// binding keeps the behaviours attached to a scene so callers can inspect
// or destroy them.
type binding struct {
	cfg        grip.Config
	draggables []*grip.Draggable
	droppables []*grip.Droppable
	touches    []*grip.Touch
}

// buildScene creates a scene from markup and attaches behaviours by class:
// ".draggable" elements get a Draggable, ".droppable" a Droppable and
// ".touch" a Touch recognizer. Per-element attributes override cfg.
func buildScene(cfg grip.Config, markup string) (*grip.Scene, *binding, error) {
	s := grip.NewScene()
	s.SetDebugMode(cfg.Debug)
	if _, err := grip.LoadMarkup(s.Root(), markup); err != nil {
		return nil, nil, err
	}
	b, err := bind(s, cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, b, nil
}

func bind(s *grip.Scene, cfg grip.Config) (*binding, error) {
	b := &binding{cfg: cfg}
	root := s.Root()

	for _, n := range root.QueryAll(".draggable") {
		opts := cfg.Drag
		if v, ok := n.Attr("scope"); ok {
			opts.Scope = v
		}
		if v, ok := n.Attr("drag-area"); ok {
			opts.DragArea = v
		}
		if v, ok := n.Attr("handle"); ok {
			opts.Handle = v
		}
		if v, ok := n.Attr("axis"); ok {
			if err := opts.Axis.UnmarshalText([]byte(v)); err != nil {
				return nil, fmt.Errorf("%s: %w", describe(n), err)
			}
		}
		if v, ok := n.Attr("revert"); ok {
			on, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%s: revert: %w", describe(n), err)
			}
			opts.Revert = on
		}
		b.draggables = append(b.draggables, grip.NewDraggable(s, n, opts))
	}

	for _, n := range root.QueryAll(".droppable") {
		opts := cfg.Drop
		if v, ok := n.Attr("scope"); ok {
			opts.Scope = v
		}
		if v, ok := n.Attr("accept"); ok {
			opts.Accept = v
		}
		d := grip.NewDroppable(s, n, opts)
		d.OnOver = func(grip.OverEvent) { n.AddClass("drop-hover") }
		d.OnOut = func(grip.OutEvent) { n.RemoveClass("drop-hover") }
		d.OnDrop = func(grip.DropEvent) { n.RemoveClass("drop-hover") }
		b.droppables = append(b.droppables, d)
	}

	for _, n := range root.QueryAll(".touch") {
		b.touches = append(b.touches, grip.NewTouch(s, n, cfg.Touch))
	}
	return b, nil
}

// reload swaps the scene content for markup and attaches fresh
// behaviours. The scene is left untouched when the markup or its
// behaviour attributes fail to parse.
func (b *binding) reload(s *grip.Scene, markup string) error {
	nodes, err := grip.ParseMarkupString(markup)
	if err != nil {
		return err
	}
	// Bind once against a scratch scene to surface attribute errors first.
	scratch := grip.NewScene()
	for _, n := range nodes {
		scratch.Root().AddChild(n)
	}
	check, err := bind(scratch, b.cfg)
	if err != nil {
		return err
	}
	check.destroy()

	b.destroy()
	root := s.Root()
	for _, n := range append([]*grip.Node(nil), root.Children()...) {
		n.Dispose()
	}
	for _, n := range nodes {
		n.RemoveFromParent()
		root.AddChild(n)
	}
	next, err := bind(s, b.cfg)
	if err != nil {
		return err
	}
	*b = *next
	return nil
}

// destroy detaches every behaviour.
func (b *binding) destroy() {
	for _, d := range b.draggables {
		d.Destroy()
	}
	for _, d := range b.droppables {
		d.Destroy()
	}
	for _, t := range b.touches {
		t.Destroy()
	}
}

func describe(n *grip.Node) string {
	if n.Name != "" {
		return "#" + n.Name
	}
	return n.Tag
}

// readMarkup returns the contents of path, or the demo scene for "".
func readMarkup(path string) (string, error) {
	if path == "" {
		return demoMarkup, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markup %s: %w", path, err)
	}
	return string(data), nil
}
