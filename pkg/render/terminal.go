package render

import (
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the image to terminal cells and draws them on the screen.
// Each cell shows two pixel rows with the upper half block, so the image
// height should be 2x the area height. The top image row lands on the first
// terminal row.
func (img *Image[C]) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := img.height - 1 - (row-area.Min.Y)*2
		botY := topY - 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < img.width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: img.cellColor(x, topY),
					Bg: img.cellColor(x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor returns the pixel at (x, y) as a terminal color, or nil for
// transparent and missing pixels.
func (img *Image[C]) cellColor(x, y int) color.Color {
	if !img.InBounds(x, y) {
		return nil
	}
	switch c := any(img.At(x, y)).(type) {
	case color.RGBA:
		if c.A == 0 {
			return nil
		}
		return c
	case color.Gray:
		return c
	}
	return nil
}

// Fit scales img to width×height with linear resampling.
func Fit(img *Image[color.RGBA], width, height int) *Image[color.RGBA] {
	if img.width == width && img.height == height {
		return img
	}
	return FromImage(transform.Resize(img.ToImage(), width, height, transform.Linear))
}
