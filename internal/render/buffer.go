// Package render turns a ray array into a textured first-person frame.
package render

import "fmt"

// PixelBuffer is a frame of packed 0xAARRGGBB values, row-major.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewPixelBuffer allocates a width x height buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid pixel buffer size %dx%d", width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}, nil
}

// Set writes c at (x, y). Out-of-range writes are dropped.
func (b *PixelBuffer) Set(x, y int, c uint32) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pixels[y*b.Width+x] = c
}

// At returns the colour at (x, y), or 0 outside the buffer.
func (b *PixelBuffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pixels[y*b.Width+x]
}

// Fill sets every pixel to c.
func (b *PixelBuffer) Fill(c uint32) {
	for i := range b.Pixels {
		b.Pixels[i] = c
	}
}

// CopyRGBA writes the frame into dst as 8-bit RGBA, the layout
// ebiten.Image.WritePixels expects. dst must hold 4*Width*Height bytes.
func (b *PixelBuffer) CopyRGBA(dst []byte) {
	for i, c := range b.Pixels {
		o := i * 4
		if o+3 >= len(dst) {
			return
		}
		dst[o] = byte(c >> 16)
		dst[o+1] = byte(c >> 8)
		dst[o+2] = byte(c)
		dst[o+3] = byte(c >> 24)
	}
}
