// Package app assembles a runnable simulation from configuration: map,
// textures, worker pool and the optional debug server.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"raycaster/internal/config"
	"raycaster/internal/debugserver"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/player"
	"raycaster/internal/sim"
	"raycaster/internal/threading"
	"raycaster/internal/world"
)

// App holds everything a presenter needs.
type App struct {
	Config   *config.Config
	Map      *world.MapData
	Textures *graphics.TextureTable
	Threads  *threading.Components
	Sim      *sim.Simulation
	Stats    *debugserver.Server // nil unless debug.stats_addr is set
}

// New builds the app. width and height override the screen size when positive.
func New(cfg *config.Config, width, height int) (*App, error) {
	log := logger.For("app")
	if err := logger.SetLevel(cfg.Debug.LogLevel); err != nil {
		return nil, err
	}

	tm := graphics.NewTextureManager(cfg.Graphics.TextureSize, filepath.Dir(cfg.Graphics.TextureManifest))
	textures, err := tm.LoadTable(cfg.Graphics.TextureManifest)
	if err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}

	md, err := loadMap(cfg, textures.Count())
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}

	if width <= 0 || height <= 0 {
		w, h := cfg.ScreenSize(md.Grid.Cols(), md.Grid.Rows())
		if width <= 0 {
			width = w
		}
		if height <= 0 {
			height = h
		}
	}

	threads := threading.NewComponents(cfg.Graphics.Parallel, cfg.Graphics.Workers, float64(cfg.Frame.FPS))

	x, y := md.StartPosition()
	p := player.New(x, y, cfg.GetStartHeading(), cfg.GetWalkSpeed(), cfg.GetTurnSpeed())
	s, err := sim.New(md.Grid, p, sim.Options{
		ScreenWidth:  width,
		ScreenHeight: height,
		FOV:          cfg.GetFOV(),
		Textures:     textures,
		Ceiling:      cfg.GetCeilingColor(),
		Floor:        cfg.GetFloorColor(),
		SideShade:    cfg.Graphics.SideShade,
		Threading:    threads,
	})
	if err != nil {
		threads.Shutdown()
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Map:      md,
		Textures: textures,
		Threads:  threads,
		Sim:      s,
	}
	if cfg.Debug.StatsAddr != "" {
		a.Stats = debugserver.New(threads.PerformanceMonitor)
		if _, err := a.Stats.Start(cfg.Debug.StatsAddr); err != nil {
			threads.Shutdown()
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"screen":   fmt.Sprintf("%dx%d", width, height),
		"map":      fmt.Sprintf("%dx%d", md.Grid.Cols(), md.Grid.Rows()),
		"textures": textures.Count(),
		"parallel": cfg.Graphics.Parallel,
	}).Info("renderer initialised")
	return a, nil
}

func loadMap(cfg *config.Config, materials int) (*world.MapData, error) {
	if cfg.World.MapFile == "" {
		return world.DefaultMapData(cfg.GetTileSize(), materials)
	}
	return world.NewMapLoader(cfg.GetTileSize(), materials).LoadMap(cfg.World.MapFile)
}

// Publish forwards a snapshot to the debug server when one is running.
func (a *App) Publish(snap sim.Snapshot) {
	if a.Stats != nil {
		a.Stats.Publish(snap)
	}
}

// Shutdown stops the debug server and the worker pool.
func (a *App) Shutdown() {
	if a.Stats != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.Stats.Shutdown(ctx); err != nil {
			logger.For("app").WithError(err).Warn("debug server shutdown")
		}
	}
	a.Threads.Shutdown()
}
