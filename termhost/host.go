// Package termhost runs a grip scene in a terminal using tcell. Each
// terminal cell stands for a CellWidth x CellHeight block of page space;
// mouse input is converted to client coordinates at the cell centre.
package termhost

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/grip"
)

// Config configures a terminal host.
type Config struct {
	CellWidth  float64       // page units per column, default 8
	CellHeight float64       // page units per row, default 16
	Tick       time.Duration // scene update interval, default 16ms
	Sound      bool          // play a short tone on every drop
	ScrollStep float64       // viewport scroll per arrow key, default 2 rows
}

func (c *Config) defaults() {
	if c.CellWidth <= 0 {
		c.CellWidth = 8
	}
	if c.CellHeight <= 0 {
		c.CellHeight = 16
	}
	if c.Tick <= 0 {
		c.Tick = 16 * time.Millisecond
	}
	if c.ScrollStep <= 0 {
		c.ScrollStep = 2 * c.CellHeight
	}
}

// Host connects a tcell screen to a scene. All scene access happens on the
// goroutine that calls Run (or HandleEvent and Draw directly).
type Host struct {
	screen tcell.Screen
	scene  *grip.Scene
	cfg    Config

	mouseDown bool
	status    string
	cue       *dropCue
}

// New creates a host for an already initialised screen.
func New(scene *grip.Scene, screen tcell.Screen, cfg Config) *Host {
	cfg.defaults()
	h := &Host{screen: screen, scene: scene, cfg: cfg}
	w, ht := screen.Size()
	h.resize(w, ht)
	scene.OnInteraction(h.observe)
	return h
}

func (h *Host) observe(ev grip.InteractionEvent) {
	switch ev.Type {
	case grip.EventDrag, grip.EventScroll:
		return
	case grip.EventDrop:
		if h.cue != nil {
			h.cue.play()
		}
	}
	h.status = fmt.Sprintf("%s node=%d target=%d", ev.Type, ev.NodeID, ev.TargetID)
}

// Status returns the description of the last interaction event.
func (h *Host) Status() string { return h.status }

func (h *Host) resize(w, ht int) {
	vp := h.scene.Viewport()
	vp.Width = float64(w) * h.cfg.CellWidth
	vp.Height = float64(ht) * h.cfg.CellHeight
}

// CellToClient returns the client coordinates of a cell centre.
func (h *Host) CellToClient(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * h.cfg.CellWidth, (float64(y) + 0.5) * h.cfg.CellHeight
}

// HandleEvent feeds one terminal event into the scene. It returns false
// when the user asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			h.scroll(-h.cfg.ScrollStep)
		case tcell.KeyDown:
			h.scroll(h.cfg.ScrollStep)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		cx, cy := h.CellToClient(x, y)
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !h.mouseDown:
			h.mouseDown = true
			h.scene.DispatchMouse(grip.PhaseDown, cx, cy)
		case !pressed && h.mouseDown:
			h.mouseDown = false
			h.scene.DispatchMouse(grip.PhaseMove, cx, cy)
			h.scene.DispatchMouse(grip.PhaseUp, cx, cy)
		default:
			h.scene.DispatchMouse(grip.PhaseMove, cx, cy)
		}

	case *tcell.EventResize:
		w, ht := ev.Size()
		h.resize(w, ht)
		h.screen.Sync()
	}
	return true
}

func (h *Host) scroll(dy float64) {
	vp := h.scene.Viewport()
	y := vp.ScrollY + dy
	if y < 0 {
		y = 0
	}
	vp.ScrollTo(vp.ScrollX, y)
}

// Draw renders the scene into the screen and shows it.
func (h *Host) Draw() {
	h.screen.Clear()
	w, ht := h.screen.Size()
	vp := h.scene.Viewport()
	grip.PaintOrder(h.scene.Root(), func(n *grip.Node) {
		r := n.PageRect()
		if r.Width <= 0 || r.Height <= 0 {
			return
		}
		cx, cy := vp.PageToClient(r.X, r.Y)
		x0, y0 := int(cx/h.cfg.CellWidth), int(cy/h.cfg.CellHeight)
		x1 := int((cx + r.Width) / h.cfg.CellWidth)
		y1 := int((cy + r.Height) / h.cfg.CellHeight)
		style := tcell.StyleDefault.Background(cellColor(n))
		for y := max(y0, 0); y < min(y1, ht); y++ {
			for x := max(x0, 0); x < min(x1, w); x++ {
				h.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		if n.Name != "" && y0 >= 0 && y0 < ht {
			for i, ch := range n.Name {
				if x := x0 + i; x >= 0 && x < min(x1, w) {
					h.screen.SetContent(x, y0, ch, nil, style.Foreground(tcell.ColorWhite))
				}
			}
		}
	})
	if h.status != "" {
		for i, ch := range h.status {
			if i >= w {
				break
			}
			h.screen.SetContent(i, ht-1, ch, nil, tcell.StyleDefault.Reverse(true))
		}
	}
	h.screen.Show()
}

func cellColor(n *grip.Node) tcell.Color {
	if c, ok := grip.NodeColor(n); ok {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	if n.HasClass("grip-helper") {
		return tcell.ColorYellow
	}
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	palette := []tcell.Color{tcell.ColorBlack, tcell.ColorNavy, tcell.ColorTeal, tcell.ColorGreen, tcell.ColorPurple}
	return palette[depth%len(palette)]
}

// Run drives the scene until the user quits. Terminal events are read on a
// separate goroutine and handed over through a channel; scene updates and
// drawing happen on the caller's goroutine.
func (h *Host) Run() error {
	h.screen.EnableMouse()
	if h.cfg.Sound {
		cue, err := newDropCue()
		if err != nil {
			// Non-fatal, the host runs without sound.
			log.Printf("audio initialization failed: %v", err)
		} else {
			h.cue = cue
			defer cue.close()
		}
	}

	ticker := time.NewTicker(h.cfg.Tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(h.screen.PollEvent, eventChan, done)

	h.Draw()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.scene.Update()
			h.Draw()
		}
	}
}

// pumpEvents forwards polled events to out until poll returns nil or done
// is closed, then closes out.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	defer close(out)
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// Run opens the terminal, runs scene until the user quits and restores the
// terminal afterwards.
func Run(scene *grip.Scene, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	return New(scene, screen, cfg).Run()
}
