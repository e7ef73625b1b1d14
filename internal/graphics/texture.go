package graphics

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrTextureShape is returned when a texture's pixel count does not match its size.
	ErrTextureShape = errors.New("texture has invalid shape")
	// ErrMissingTexture is returned when a material id has no texture.
	ErrMissingTexture = errors.New("missing texture")
)

// Texture is a square raster of packed 0xAARRGGBB values, row-major.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []uint32
}

// NewTexture validates the dimensions and takes ownership of pixels.
func NewTexture(name string, width, height int, pixels []uint32) (*Texture, error) {
	if width <= 0 || height <= 0 || width != height {
		return nil, fmt.Errorf("%w: %q is %dx%d, want a non-empty square", ErrTextureShape, name, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %q has %d pixels, want %d", ErrTextureShape, name, len(pixels), width*height)
	}
	return &Texture{Name: name, Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the texel at (x, y). Coordinates are clamped into the texture.
func (t *Texture) At(x, y int) uint32 {
	x = min(max(x, 0), t.Width-1)
	y = min(max(y, 0), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// TextureFromImage resamples img to size x size with nearest-neighbour sampling.
func TextureFromImage(name string, img image.Image, size int) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %q is empty", ErrTextureShape, name)
	}
	pixels := make([]uint32, size*size)
	for y := 0; y < size; y++ {
		sy := b.Min.Y + y*b.Dy()/size
		for x := 0; x < size; x++ {
			sx := b.Min.X + x*b.Dx()/size
			r, g, bl, a := img.At(sx, sy).RGBA()
			pixels[y*size+x] = PackARGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8), uint8(a>>8))
		}
	}
	return NewTexture(name, size, size, pixels)
}

// PackARGB packs channels into 0xAARRGGBB.
func PackARGB(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackARGB splits a packed 0xAARRGGBB value.
func UnpackARGB(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Shade scales the colour channels of c by f, keeping alpha.
func Shade(c uint32, f float64) uint32 {
	if f == 1 {
		return c
	}
	r, g, b, a := UnpackARGB(c)
	scale := func(v uint8) uint8 {
		return uint8(min(max(float64(v)*f, 0), 255))
	}
	return PackARGB(scale(r), scale(g), scale(b), a)
}

// TextureTable maps material ids 1..K to textures.
type TextureTable struct {
	textures []*Texture
}

// NewTextureTable builds a table where textures[i] serves material id i+1.
func NewTextureTable(textures []*Texture) (*TextureTable, error) {
	if len(textures) == 0 {
		return nil, fmt.Errorf("%w: table is empty", ErrMissingTexture)
	}
	for i, tex := range textures {
		if tex == nil {
			return nil, fmt.Errorf("%w: material %d", ErrMissingTexture, i+1)
		}
		if len(tex.Pixels) != tex.Width*tex.Height || tex.Width <= 0 || tex.Width != tex.Height {
			return nil, fmt.Errorf("%w: material %d", ErrTextureShape, i+1)
		}
	}
	return &TextureTable{textures: textures}, nil
}

// Count returns K, the number of materials.
func (tt *TextureTable) Count() int {
	return len(tt.textures)
}

// Texture returns the texture for a material id, or nil when the id is out of range.
func (tt *TextureTable) Texture(material int) *Texture {
	if material < 1 || material > len(tt.textures) {
		return nil
	}
	return tt.textures[material-1]
}
