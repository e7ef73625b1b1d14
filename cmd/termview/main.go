// Command termview renders the raycaster in a terminal using half-block cells.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"raycaster/internal/app"
	"raycaster/internal/config"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/render"
	"raycaster/internal/sim"
)

const halfBlock = '▀'

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	logPath := flag.String("log", "termview.log", "log file; the terminal is busy drawing")
	flag.Parse()

	log := logger.For("termview")
	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		logger.Log.SetOutput(f)
		defer f.Close()
	} else {
		log.WithError(err).Warn("logging to stderr")
	}

	cfg, err := config.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", *configPath).Warn("config not found, using defaults")
		cfg = config.Default()
	} else if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("failed to init terminal screen")
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	cols, rows := screen.Size()
	a, err := app.New(cfg, cols, rows*2)
	if err != nil {
		screen.Fini()
		log.WithError(err).Fatal("failed to start renderer")
	}
	defer a.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, screen, a); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("render loop stopped")
	}
	log.Info("quit")
}

// run drives frames until the player quits or ctx is cancelled.
func run(ctx context.Context, screen tcell.Screen, a *app.App) error {
	var (
		mu    sync.Mutex
		latch keyLatch
	)
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				mu.Lock()
				latch.Observe(ev, time.Now())
				mu.Unlock()
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	pacer := sim.NewPacer(a.Config.Frame.FPS)
	for {
		dt, err := pacer.Wait(ctx)
		if err != nil {
			return err
		}

		mu.Lock()
		in := latch.Intents(time.Now())
		mu.Unlock()
		if in.Quit {
			return nil
		}

		if err := a.Sim.Step(in, dt); err != nil {
			return err
		}
		a.Publish(a.Sim.Snapshot())
		draw(screen, a.Sim.Buffer())
		screen.Show()
	}
}

// draw packs two pixel rows into each cell: foreground on top, background below.
func draw(screen tcell.Screen, buf *render.PixelBuffer) {
	for cy := 0; cy*2 < buf.Height; cy++ {
		for x := 0; x < buf.Width; x++ {
			top := toColor(buf.At(x, cy*2))
			bottom := toColor(buf.At(x, cy*2+1))
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
}

func toColor(c uint32) tcell.Color {
	r, g, b, _ := graphics.UnpackARGB(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
