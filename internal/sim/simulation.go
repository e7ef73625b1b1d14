// Package sim owns the per-frame pipeline state: the player pose, the ray
// array and the pixel buffer. A frame driver holds one Simulation and calls
// Step once per frame.
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"raycaster/internal/collision"
	"raycaster/internal/graphics"
	"raycaster/internal/logger"
	"raycaster/internal/player"
	"raycaster/internal/raycast"
	"raycaster/internal/render"
	"raycaster/internal/threading"
	"raycaster/internal/threading/monitoring"
	"raycaster/internal/world"
)

// Intents are the discrete inputs sampled for one frame.
type Intents struct {
	Turn int // -1 left, +1 right
	Walk int // -1 back, +1 forward
	Quit bool
}

// Options configure the render pipeline.
type Options struct {
	ScreenWidth  int
	ScreenHeight int
	FOV          float64 // radians
	Textures     *graphics.TextureTable
	Ceiling      uint32
	Floor        uint32
	SideShade    float64
	Threading    *threading.Components // optional; nil runs serially without metrics
}

// Snapshot is a copy of the pose published after a frame.
type Snapshot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
	Frame uint64  `json:"frame"`
}

// Simulation is the frame context.
type Simulation struct {
	grid      *world.Grid
	oracle    *collision.CollisionSystem
	player    player.Player
	rays      []raycast.Ray
	buffer    *render.PixelBuffer
	caster    *raycast.Caster
	projector *render.Projector
	threads   *threading.Components
	frame     uint64
	log       *logrus.Entry
}

// New builds a simulation over grid. Every material in the grid must have a texture.
func New(grid *world.Grid, p player.Player, opts Options) (*Simulation, error) {
	if opts.Textures == nil {
		return nil, fmt.Errorf("simulation needs a texture table: %w", graphics.ErrMissingTexture)
	}
	if used := grid.MaxMaterial(); used > opts.Textures.Count() {
		return nil, fmt.Errorf("map uses material %d but only %d textures are loaded: %w",
			used, opts.Textures.Count(), graphics.ErrMissingTexture)
	}
	buf, err := render.NewPixelBuffer(opts.ScreenWidth, opts.ScreenHeight)
	if err != nil {
		return nil, err
	}

	oracle := collision.NewCollisionSystem(grid, grid.TileSize())
	caster := raycast.NewCaster(oracle, grid.TileSize(), opts.FOV)
	projector := render.NewProjector(opts.ScreenWidth, opts.ScreenHeight, grid.TileSize(), opts.FOV, opts.Textures)
	projector.SetColors(opts.Ceiling, opts.Floor)
	if opts.SideShade > 0 {
		projector.SetSideShade(opts.SideShade)
	}
	if opts.Threading != nil && opts.Threading.Pool != nil {
		caster.SetRunner(opts.Threading.Runner)
		projector.SetRunner(opts.Threading.Runner)
	}

	s := &Simulation{
		grid:      grid,
		oracle:    oracle,
		player:    p,
		rays:      make([]raycast.Ray, opts.ScreenWidth),
		buffer:    buf,
		caster:    caster,
		projector: projector,
		threads:   opts.Threading,
		log:       logger.For("sim"),
	}
	if oracle.HasWallAt(p.X, p.Y) {
		s.log.WithFields(logrus.Fields{"x": p.X, "y": p.Y}).Warn("player starts inside a wall")
	}
	s.log.WithFields(logrus.Fields{
		"width":    opts.ScreenWidth,
		"height":   opts.ScreenHeight,
		"rows":     grid.Rows(),
		"cols":     grid.Cols(),
		"parallel": opts.Threading != nil && opts.Threading.Pool != nil,
	}).Debug("simulation ready")
	return s, nil
}

// Update advances the player by one frame of intents.
func (s *Simulation) Update(in Intents, dt float64) {
	s.player = s.player.Advance(s.oracle, in.Turn, in.Walk, dt)
}

// Render recasts every column and rewrites the pixel buffer.
func (s *Simulation) Render() error {
	monitor := s.monitor()
	if monitor == nil {
		s.caster.CastAll(s.player.X, s.player.Y, s.player.Angle, s.rays)
		return s.projector.Project(s.rays, s.player.Angle, s.buffer)
	}

	rt := monitor.StartRaycast()
	s.caster.CastAll(s.player.X, s.player.Y, s.player.Angle, s.rays)
	rt.EndRaycast()

	pt := monitor.StartProjection()
	defer pt.EndProjection()
	return s.projector.Project(s.rays, s.player.Angle, s.buffer)
}

// Step runs one whole frame: motion, casting and projection.
func (s *Simulation) Step(in Intents, dt float64) error {
	if monitor := s.monitor(); monitor != nil {
		ft := monitor.StartFrame()
		defer ft.EndFrame()
	}
	s.Update(in, dt)
	if err := s.Render(); err != nil {
		return fmt.Errorf("frame %d: %w", s.frame, err)
	}
	s.frame++
	if s.threads != nil {
		s.threads.SyncWorkerMetrics()
	}
	return nil
}

func (s *Simulation) monitor() *monitoring.PerformanceMonitor {
	if s.threads == nil {
		return nil
	}
	return s.threads.PerformanceMonitor
}

// Player returns the current pose.
func (s *Simulation) Player() player.Player { return s.player }

// SetPlayer replaces the pose.
func (s *Simulation) SetPlayer(p player.Player) { s.player = p }

// Rays returns the ray array of the last Render. Callers must not modify it.
func (s *Simulation) Rays() []raycast.Ray { return s.rays }

// Buffer returns the pixel buffer of the last Render.
func (s *Simulation) Buffer() *render.PixelBuffer { return s.buffer }

// Grid returns the map.
func (s *Simulation) Grid() *world.Grid { return s.grid }

// Oracle returns the wall oracle over the map.
func (s *Simulation) Oracle() *collision.CollisionSystem { return s.oracle }

// Frame returns the number of completed frames.
func (s *Simulation) Frame() uint64 { return s.frame }

// Snapshot copies the pose and frame counter.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{X: s.player.X, Y: s.player.Y, Angle: s.player.Angle, Frame: s.frame}
}
