package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// BytesPerPixel is the number of bytes stored per framebuffer pixel (R, G, B)
const BytesPerPixel = 3

// ErrInvalidSize is returned for non-positive framebuffer dimensions
var ErrInvalidSize = errors.New("invalid framebuffer size")

// Framebuffer is a flat RGB byte buffer, row-major with the top row first.
// Concurrent writers are safe as long as they touch disjoint pixels.
type Framebuffer struct {
	Width  int
	Height int
	Stride int    // Bytes per row
	Pix    []byte // len == Stride * Height
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	stride := width * BytesPerPixel
	return &Framebuffer{
		Width:  width,
		Height: height,
		Stride: stride,
		Pix:    make([]byte, stride*height),
	}, nil
}

// PixOffset returns the index of the first byte of pixel (x, y)
func (fb *Framebuffer) PixOffset(x, y int) int {
	return y*fb.Stride + x*BytesPerPixel
}

// SetRGB writes one pixel; y = 0 is the top row
func (fb *Framebuffer) SetRGB(x, y int, r, g, b byte) {
	i := fb.PixOffset(x, y)
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
}

// RGB reads one pixel; y = 0 is the top row
func (fb *Framebuffer) RGB(x, y int) (r, g, b byte) {
	i := fb.PixOffset(x, y)
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := fb.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
