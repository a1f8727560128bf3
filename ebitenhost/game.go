package ebitenhost

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/grip"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// ShowEvents prints the most recent interaction event in the corner.
	ShowEvents bool
	Background color.Color
	// Style picks a fill colour per node. Nil uses the node's "color"
	// attribute, falling back to a grey ramp by depth.
	Style func(n *grip.Node) color.Color
}

// Game is an ebiten.Game that drives a grip scene. Use it directly to embed
// a scene in an existing loop, or call Run.
type Game struct {
	Scene  *grip.Scene
	Input  Input
	Config RunConfig

	lastEvent string
	labelFace text.Face
}

// NewGame wraps scene in a Game.
func NewGame(scene *grip.Scene, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Background == nil {
		cfg.Background = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff}
	}
	g := &Game{Scene: scene, Config: cfg, labelFace: text.NewGoXFace(basicfont.Face7x13)}
	scene.OnInteraction(func(ev grip.InteractionEvent) {
		if ev.Type == grip.EventDrag || ev.Type == grip.EventScroll {
			return
		}
		g.lastEvent = fmt.Sprintf("%s node=%d target=%d", ev.Type, ev.NodeID, ev.TargetID)
	})
	return g
}

// Update polls input and advances the scene.
func (g *Game) Update() error {
	g.Input.Poll(g.Scene)
	g.Scene.Update()
	return nil
}

// Draw paints every visible element as a filled box with its border.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.Config.Background)
	vp := g.Scene.Viewport()
	grip.PaintOrder(g.Scene.Root(), func(n *grip.Node) {
		r := n.PageRect()
		if r.Width <= 0 || r.Height <= 0 {
			return
		}
		cx, cy := vp.PageToClient(r.X, r.Y)
		outer := image.Rect(int(cx), int(cy), int(cx+r.Width), int(cy+r.Height))
		fill := g.fillColor(n)
		if n.Border != (grip.Edges{}) {
			fillRect(screen, outer, darken(fill))
			inner := image.Rect(
				outer.Min.X+int(n.Border.Left), outer.Min.Y+int(n.Border.Top),
				outer.Max.X-int(n.Border.Right), outer.Max.Y-int(n.Border.Bottom),
			)
			fillRect(screen, inner, fill)
		} else {
			fillRect(screen, outer, fill)
		}
		if n.Name != "" {
			op := &text.DrawOptions{}
			op.GeoM.Translate(float64(outer.Min.X+3), float64(outer.Min.Y+2))
			op.ColorScale.ScaleWithColor(color.White)
			text.Draw(screen, n.Name, g.labelFace, op)
		}
	})

	y := 0
	if g.Config.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, y)
		y += 16
	}
	if g.Config.ShowEvents && g.lastEvent != "" {
		ebitenutil.DebugPrintAt(screen, g.lastEvent, 4, y)
	}
}

// Layout fixes the logical screen size and keeps the scene viewport in
// sync with it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := g.Scene.Viewport()
	vp.Width, vp.Height = float64(g.Config.Width), float64(g.Config.Height)
	return g.Config.Width, g.Config.Height
}

func (g *Game) fillColor(n *grip.Node) color.Color {
	if g.Config.Style != nil {
		if c := g.Config.Style(n); c != nil {
			return c
		}
	}
	if c, ok := grip.NodeColor(n); ok {
		return c
	}
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	v := uint8(0x40 + (depth*0x20)%0xa0)
	return color.RGBA{R: v, G: v, B: v, A: 0xff}
}

// fillRect fills r on dst; SubImage clips r to dst's bounds.
func fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	dst.SubImage(r).(*ebiten.Image).Fill(c)
}

func darken(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 9), G: uint8(g >> 9), B: uint8(b >> 9), A: uint8(a >> 8)}
}

// Run opens a window and runs scene until it is closed.
func Run(scene *grip.Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	title := g.Config.Title
	if title == "" {
		title = "grip"
	}
	ebiten.SetWindowSize(g.Config.Width, g.Config.Height)
	ebiten.SetWindowTitle(title)
	return ebiten.RunGame(g)
}
