package render

import (
	"fmt"
	"math"

	"raycaster/internal/graphics"
	"raycaster/internal/mathutil"
	"raycaster/internal/raycast"
)

// MinPerpDistance keeps strip heights finite when the viewer touches a wall.
const MinPerpDistance = 1.0

// Runner spreads column indices over workers.
type Runner interface {
	ParallelFor(start, end int, fn func(int))
}

// Strip is the vertical screen extent of one wall column.
type Strip struct {
	Visible bool
	Top     int // first wall row
	Bottom  int // one past the last wall row
	Height  int // unclamped projected height
	TexX    int
	Texture *graphics.Texture
}

// Projector maps rays to textured wall strips with ceiling and floor fill.
type Projector struct {
	width     int
	height    int
	tileSize  float64
	planeDist float64
	textures  *graphics.TextureTable

	ceiling   uint32
	floor     uint32
	sideShade float64
	runner    Runner
}

// NewProjector creates a projector for a width x height screen.
func NewProjector(width, height int, tileSize, fov float64, textures *graphics.TextureTable) *Projector {
	return &Projector{
		width:     width,
		height:    height,
		tileSize:  tileSize,
		planeDist: (float64(width) / 2) / math.Tan(fov/2),
		textures:  textures,
		ceiling:   graphics.PackARGB(0, 0, 0, 0xFF),
		floor:     graphics.PackARGB(0, 0, 0, 0xFF),
		sideShade: 1,
	}
}

// SetColors sets the ceiling and floor fill.
func (p *Projector) SetColors(ceiling, floor uint32) {
	p.ceiling = ceiling
	p.floor = floor
}

// SetSideShade sets the brightness factor for horizontal-gridline hits.
func (p *Projector) SetSideShade(f float64) {
	p.sideShade = f
}

// SetRunner makes Project distribute columns through r.
func (p *Projector) SetRunner(r Runner) {
	p.runner = r
}

// PlaneDistance returns the distance from the viewer to the projection plane.
func (p *Projector) PlaneDistance() float64 {
	return p.planeDist
}

// PerpendicularDistance removes fisheye distortion from a ray's raw distance.
func PerpendicularDistance(ray raycast.Ray, heading float64) float64 {
	return ray.Distance * math.Cos(ray.Angle-heading)
}

// ComputeStrip works out where the ray's wall lands in its column.
func (p *Projector) ComputeStrip(ray raycast.Ray, heading float64) Strip {
	if !ray.Hit {
		return Strip{}
	}
	tex := p.textures.Texture(ray.Material)
	if tex == nil {
		return Strip{}
	}

	perp := max(PerpendicularDistance(ray, heading), MinPerpDistance)
	stripH := int(p.tileSize / perp * p.planeDist)

	half := p.height / 2
	top := mathutil.Clamp(half-stripH/2, 0, p.height)
	bottom := mathutil.Clamp(half+stripH/2, 0, p.height)

	along := ray.HitX
	if ray.WasHitVertical {
		along = ray.HitY
	}
	offset := math.Mod(along, p.tileSize)
	if offset < 0 {
		offset += p.tileSize
	}
	texX := mathutil.Clamp(int(offset*float64(tex.Width)/p.tileSize), 0, tex.Width-1)

	return Strip{
		Visible: true,
		Top:     top,
		Bottom:  bottom,
		Height:  stripH,
		TexX:    texX,
		Texture: tex,
	}
}

// Project rewrites every pixel of buf from rays. len(rays) must equal buf.Width
// and buf must match the projector's screen size.
func (p *Projector) Project(rays []raycast.Ray, heading float64, buf *PixelBuffer) error {
	if buf.Width != p.width || buf.Height != p.height {
		return fmt.Errorf("pixel buffer is %dx%d, projector expects %dx%d", buf.Width, buf.Height, p.width, p.height)
	}
	if len(rays) != buf.Width {
		return fmt.Errorf("got %d rays for %d columns", len(rays), buf.Width)
	}

	column := func(x int) {
		p.drawColumn(buf, x, rays[x], heading)
	}
	if p.runner == nil {
		for x := range rays {
			column(x)
		}
		return nil
	}
	p.runner.ParallelFor(0, len(rays), column)
	return nil
}

// drawColumn writes only column x of buf.
func (p *Projector) drawColumn(buf *PixelBuffer, x int, ray raycast.Ray, heading float64) {
	w := buf.Width
	strip := p.ComputeStrip(ray, heading)
	if !strip.Visible {
		half := p.height / 2
		for y := 0; y < p.height; y++ {
			if y < half {
				buf.Pixels[y*w+x] = p.ceiling
			} else {
				buf.Pixels[y*w+x] = p.floor
			}
		}
		return
	}

	for y := 0; y < strip.Top; y++ {
		buf.Pixels[y*w+x] = p.ceiling
	}

	tex := strip.Texture
	shade := 1.0
	if !ray.WasHitVertical {
		shade = p.sideShade
	}
	half := p.height / 2
	for y := strip.Top; y < strip.Bottom; y++ {
		texY := (y + strip.Height/2 - half) * tex.Height / strip.Height
		buf.Pixels[y*w+x] = graphics.Shade(tex.At(strip.TexX, texY), shade)
	}

	for y := strip.Bottom; y < p.height; y++ {
		buf.Pixels[y*w+x] = p.floor
	}
}
