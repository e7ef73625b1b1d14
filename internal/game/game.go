// Package game presents the simulation in an ebiten window.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"raycaster/internal/config"
	"raycaster/internal/logger"
	"raycaster/internal/sim"
	"raycaster/internal/threading"
)

// maxFrameDelta caps dt after a stall so motion never jumps through walls in one step.
const maxFrameDelta = 0.25

// Publisher receives the pose after every frame.
type Publisher interface {
	Publish(sim.Snapshot)
}

// Game implements ebiten.Game over a Simulation.
type Game struct {
	sim       *sim.Simulation
	threads   *threading.Components
	config    *config.Config
	publisher Publisher

	input   *InputHandler
	minimap *Minimap
	frame   *ebiten.Image
	pixels  []byte

	showMinimap bool
	showHUD     bool
	lastUpdate  time.Time
	log         *logrus.Entry
}

// NewGame wires a simulation to the window. publisher may be nil.
func NewGame(s *sim.Simulation, threads *threading.Components, cfg *config.Config, publisher Publisher) *Game {
	buf := s.Buffer()
	return &Game{
		sim:         s,
		threads:     threads,
		config:      cfg,
		publisher:   publisher,
		input:       NewInputHandler(),
		minimap:     NewMinimap(cfg.Minimap.Scale, cfg.Minimap.ShowRays),
		frame:       ebiten.NewImage(buf.Width, buf.Height),
		pixels:      make([]byte, 4*buf.Width*buf.Height),
		showMinimap: cfg.Minimap.Enabled,
		log:         logger.For("game"),
	}
}

// Update handles input and advances one frame
func (g *Game) Update() error {
	intents, toggles := g.input.Poll()
	if intents.Quit {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	if toggles.Minimap {
		g.showMinimap = !g.showMinimap
	}
	if toggles.HUD {
		g.showHUD = !g.showHUD
	}

	if err := g.sim.Step(intents, g.frameDelta()); err != nil {
		return err
	}
	if g.publisher != nil {
		g.publisher.Publish(g.sim.Snapshot())
	}
	g.checkAlerts()
	return nil
}

// frameDelta measures the monotonic time since the previous Update.
func (g *Game) frameDelta() float64 {
	now := time.Now()
	if g.lastUpdate.IsZero() {
		g.lastUpdate = now
		return 1 / float64(g.config.Frame.FPS)
	}
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	return min(dt, maxFrameDelta)
}

// checkAlerts logs performance warnings about once every five seconds.
func (g *Game) checkAlerts() {
	if g.threads == nil || g.sim.Frame()%uint64(5*g.config.Frame.FPS) != 0 {
		return
	}
	for _, a := range g.threads.CheckPerformanceAlerts() {
		g.log.WithFields(logrus.Fields{
			"type":      a.Type,
			"value":     a.Value,
			"threshold": a.Threshold,
		}).Warn(a.Message)
	}
}

// Draw blits the pixel buffer and the enabled overlays
func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.Buffer().CopyRGBA(g.pixels)
	g.frame.WritePixels(g.pixels)
	screen.DrawImage(g.frame, nil)

	if g.showMinimap {
		g.minimap.Draw(screen, g.sim)
	}
	if g.showHUD && g.threads != nil {
		drawHUD(screen, hudLines(g.threads.PerformanceMonitor.GetCurrentMetrics(), g.config.Frame.FPS, g.sim.Player()))
	}
}

// Layout returns the screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	buf := g.sim.Buffer()
	return buf.Width, buf.Height
}

// Run opens the window and blocks until the player quits.
func Run(g *Game) error {
	buf := g.sim.Buffer()
	scale := g.config.Display.WindowScale
	ebiten.SetWindowSize(int(float64(buf.Width)*scale), int(float64(buf.Height)*scale))
	ebiten.SetWindowTitle(g.config.Display.WindowTitle)
	if g.config.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(g.config.Frame.FPS)

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
