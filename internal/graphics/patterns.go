package graphics

import "fmt"

// DefaultTextureNames lists the built-in materials in id order.
var DefaultTextureNames = []string{
	"redbrick",
	"purplestone",
	"mossystone",
	"graystone",
	"colorstone",
	"bluestone",
	"wood",
	"eagle",
}

type rgb struct{ r, g, b uint8 }

func (c rgb) scaled(f float64) uint32 {
	return Shade(PackARGB(c.r, c.g, c.b, 0xFF), f)
}

// hash2 is a small integer hash used to speckle the stone patterns.
func hash2(x, y, seed int) uint32 {
	h := uint32(x*374761393 + y*668265263 + seed*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

type patternFunc func(x, y, size int) uint32

func brick(base, mortar rgb) patternFunc {
	return func(x, y, size int) uint32 {
		rowH := max(size/8, 1)
		brickW := max(size/4, 1)
		row := y / rowH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		if y%rowH == 0 || (x+offset)%brickW == 0 {
			return mortar.scaled(1)
		}
		return base.scaled(0.85 + 0.15*float64(hash2((x+offset)/brickW, row, 1)%100)/100)
	}
}

func stone(base rgb, seed int) patternFunc {
	return func(x, y, size int) uint32 {
		cell := max(size/8, 1)
		block := 0.75 + 0.25*float64(hash2(x/cell, y/cell, seed)%100)/100
		grain := 0.9 + 0.1*float64(hash2(x, y, seed)%100)/100
		return base.scaled(block * grain)
	}
}

func checker(colors ...rgb) patternFunc {
	return func(x, y, size int) uint32 {
		cell := max(size/4, 1)
		return colors[(x/cell+y/cell)%len(colors)].scaled(1)
	}
}

func wood(base rgb) patternFunc {
	return func(x, y, size int) uint32 {
		plank := max(size/4, 1)
		if x%plank == 0 {
			return base.scaled(0.5)
		}
		ring := float64((x*7+y/3+int(hash2(x/plank, 0, 3)%16))%16) / 16
		return base.scaled(0.8 + 0.2*ring)
	}
}

func emblem(field, mark rgb) patternFunc {
	return func(x, y, size int) uint32 {
		c := size / 2
		dx, dy := x-c, y-c
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx+dy < size/3 {
			return mark.scaled(1)
		}
		if x == 0 || y == 0 || x == size-1 || y == size-1 {
			return field.scaled(0.6)
		}
		return field.scaled(1)
	}
}

var patterns = map[string]patternFunc{
	"redbrick":    brick(rgb{160, 40, 30}, rgb{180, 180, 170}),
	"purplestone": stone(rgb{120, 60, 140}, 2),
	"mossystone":  stone(rgb{80, 120, 60}, 3),
	"graystone":   stone(rgb{128, 128, 128}, 4),
	"colorstone":  checker(rgb{170, 60, 60}, rgb{60, 140, 70}, rgb{60, 80, 170}, rgb{190, 170, 60}),
	"bluestone":   stone(rgb{50, 70, 160}, 6),
	"wood":        wood(rgb{140, 90, 45}),
	"eagle":       emblem(rgb{110, 110, 120}, rgb{200, 170, 60}),
}

// placeholderColor fills textures whose pattern is unknown.
var placeholderColor = rgb{128, 128, 128}

// HasPattern reports whether name is a built-in procedural pattern.
func HasPattern(name string) bool {
	_, ok := patterns[name]
	return ok
}

// ProceduralTexture generates a size x size texture from a built-in pattern.
// Unknown names produce a flat gray placeholder.
func ProceduralTexture(name string, size int) (*Texture, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %q size %d", ErrTextureShape, name, size)
	}
	fn, ok := patterns[name]
	pixels := make([]uint32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if ok {
				pixels[y*size+x] = fn(x, y, size)
			} else {
				pixels[y*size+x] = placeholderColor.scaled(1)
			}
		}
	}
	return NewTexture(name, size, size, pixels)
}

// DefaultTextureTable builds the eight built-in procedural materials.
func DefaultTextureTable(size int) (*TextureTable, error) {
	textures := make([]*Texture, len(DefaultTextureNames))
	for i, name := range DefaultTextureNames {
		tex, err := ProceduralTexture(name, size)
		if err != nil {
			return nil, err
		}
		textures[i] = tex
	}
	return NewTextureTable(textures)
}
