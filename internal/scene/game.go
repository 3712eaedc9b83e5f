// Package scene runs the engine in an ebiten window: pointer input drives the
// repulse triggers and key toggles change link options at runtime.
package scene

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-links/internal/engine"
	"github.com/olivierh59500/particle-links/internal/options"
	"github.com/olivierh59500/particle-links/internal/particle"
)

var elementOutline = color.RGBA{0x40, 0xa0, 0xff, 0xff}

// Game is the ebiten.Game driving one engine
type Game struct {
	engine     *engine.Engine
	screen     *Screen
	configPath string

	Paused       bool
	ShowHUD      bool
	ShowElements bool
}

// New wraps e; configPath is where S saves and L loads options
func New(e *engine.Engine, configPath string) *Game {
	return &Game{engine: e, configPath: configPath, ShowHUD: true, ShowElements: true}
}

// Run opens the window and blocks until it is closed
func Run(g *Game, title string) error {
	o := g.engine.Options
	ebiten.SetWindowSize(int(o.Canvas.Width), int(o.Canvas.Height))
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

// Update is called each tick by ebiten
func (g *Game) Update() error {
	g.handleInput()

	if g.Paused {
		return nil
	}
	g.engine.Tick(particle.FrameDelta)
	return nil
}

// Draw is called each frame by ebiten
func (g *Game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = NewScreen(screen)
	} else {
		g.screen.Reset(screen)
	}
	g.engine.Draw(g.screen)

	if g.ShowElements && g.engine.Layout != nil {
		ratio := g.engine.Options.Canvas.PixelRatio
		for _, el := range g.engine.Layout.Elements() {
			b := el.Box()
			vector.StrokeRect(screen,
				float32(b.Position.X*ratio), float32(b.Position.Y*ratio),
				float32(b.Size.Width*ratio), float32(b.Size.Height*ratio),
				1, elementOutline, true)
			ebitenutil.DebugPrintAt(screen, el.Text(), int(b.Position.X*ratio)+4, int(b.Position.Y*ratio)+4)
		}
	}

	if g.ShowHUD {
		s := g.engine.Stats()
		o := g.engine.Options
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"TPS %.0f  particles %d  links %d  triangles %d\nwarp %v  mask %v  paused %v\n[space] pause [w] warp [t] triangles [m] mask [e] elements [h] hud [s] save [l] load",
			ebiten.ActualTPS(), s.Particles, s.Links, s.Triangles,
			o.Links.Warp, o.BackgroundMask.Enable, g.Paused))
	}
}

// Layout returns the canvas size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	o := g.engine.Options
	return int(o.Canvas.Width), int(o.Canvas.Height)
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	o := g.engine.Options
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		g.engine.SetWarp(!o.Links.Warp)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.Links.Triangles.Enable = !o.Links.Triangles.Enable
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.BackgroundMask.Enable = !o.BackgroundMask.Enable
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.ShowElements = !g.ShowElements
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.ShowHUD = !g.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.load()
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if x >= 0 && y >= 0 && x < o.Canvas.Width && y < o.Canvas.Height {
		g.engine.Mouse.Move(x, y)
	} else {
		g.engine.Mouse.Leave()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.Click(x, y)
	}
}

func (g *Game) save() {
	if err := options.Save(g.engine.Options, g.configPath); err != nil {
		log.Printf("save options: %v", err)
		return
	}
	log.Printf("options saved to %s", g.configPath)
}

// load replaces the engine with one built from the options file
func (g *Game) load() {
	o, err := options.Load(g.configPath)
	if err != nil {
		log.Printf("load options: %v", err)
		return
	}
	e, err := engine.New(o)
	if err != nil {
		log.Printf("load options: %v", err)
		return
	}
	g.engine = e
	ebiten.SetWindowSize(int(o.Canvas.Width), int(o.Canvas.Height))
	log.Printf("options loaded from %s", g.configPath)
}
