// Package render implements the tinyrender software pipeline: pixel buffers,
// texture sampling, the programmable rasterizer, its shaders and the frame
// composition that ties the passes together.
package render

import (
	"fmt"
	"image"
	"image/color"
)

// Pixel is the set of pixel types an Image can hold.
type Pixel interface {
	color.RGBA | color.Gray
}

// IndexError is the panic value of an out-of-range pixel access.
type IndexError struct {
	X, Y          int
	Width, Height int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("render: pixel (%d, %d) outside %dx%d image", e.X, e.Y, e.Width, e.Height)
}

// Image is a row-major 2D pixel buffer. Row 0 is the bottom row.
type Image[C Pixel] struct {
	width  int
	height int
	pix    []C
}

// NewImage creates a zeroed image.
func NewImage[C Pixel](width, height int) *Image[C] {
	return &Image[C]{
		width:  width,
		height: height,
		pix:    make([]C, width*height),
	}
}

// Width returns the width in pixels.
func (img *Image[C]) Width() int { return img.width }

// Height returns the height in pixels.
func (img *Image[C]) Height() int { return img.height }

// InBounds reports whether (x, y) addresses a pixel.
func (img *Image[C]) InBounds(x, y int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height
}

func (img *Image[C]) index(x, y int) int {
	if !img.InBounds(x, y) {
		panic(&IndexError{X: x, Y: y, Width: img.width, Height: img.height})
	}
	return y*img.width + x
}

// At returns the pixel at (x, y). It panics with an *IndexError when
// (x, y) is outside the image.
func (img *Image[C]) At(x, y int) C {
	return img.pix[img.index(x, y)]
}

// Set sets the pixel at (x, y). It panics with an *IndexError when (x, y)
// is outside the image.
func (img *Image[C]) Set(x, y int, c C) {
	img.pix[img.index(x, y)] = c
}

// Fill sets every pixel to c.
func (img *Image[C]) Fill(c C) {
	if len(img.pix) == 0 {
		return
	}
	// copy-doubling
	img.pix[0] = c
	for i := 1; i < len(img.pix); i *= 2 {
		copy(img.pix[i:], img.pix[:i])
	}
}

// Clear zeroes every pixel.
func (img *Image[C]) Clear() {
	clear(img.pix)
}

// FlipY mirrors the image vertically in place.
func (img *Image[C]) FlipY() {
	for top, bot := 0, img.height-1; top < bot; top, bot = top+1, bot-1 {
		a := img.pix[top*img.width : (top+1)*img.width]
		b := img.pix[bot*img.width : (bot+1)*img.width]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// Clone returns a deep copy.
func (img *Image[C]) Clone() *Image[C] {
	out := NewImage[C](img.width, img.height)
	copy(out.pix, img.pix)
	return out
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Points outside the image are skipped.
func (img *Image[C]) DrawLine(x0, y0, x1, y1 int, c C) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if img.InBounds(x0, y0) {
			img.pix[y0*img.width+x0] = c
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the buffer to a standard library image with the usual
// top-down row order.
func (img *Image[C]) ToImage() image.Image {
	rect := image.Rect(0, 0, img.width, img.height)
	switch pix := any(img.pix).(type) {
	case []color.RGBA:
		out := image.NewRGBA(rect)
		for y := range img.height {
			for x := range img.width {
				out.SetRGBA(x, img.height-1-y, pix[y*img.width+x])
			}
		}
		return out
	case []color.Gray:
		out := image.NewGray(rect)
		for y := range img.height {
			for x := range img.width {
				out.SetGray(x, img.height-1-y, pix[y*img.width+x])
			}
		}
		return out
	}
	panic("render: unsupported pixel type")
}

// FromImage converts any standard library image into an RGBA buffer,
// flipping it so row 0 is the bottom row.
func FromImage(src image.Image) *Image[color.RGBA] {
	b := src.Bounds()
	out := NewImage[color.RGBA](b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
			out.pix[(b.Max.Y-1-y)*out.width+(x-b.Min.X)] = c
		}
	}
	return out
}
