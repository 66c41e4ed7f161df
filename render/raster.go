package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph raster metrics from basicfont.Face7x13
const (
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

// Rasterize renders the buffer to an RGBA image. scale is the integer
// pixel multiplier (the raster analog of a device pixel ratio).
func Rasterize(b *Buffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w := b.Width() * glyphWidth
	h := b.Height() * glyphHeight
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rect(0, 0, scale, scale))
	}
	base := image.NewRGBA(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  base,
		Face: basicfont.Face7x13,
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			cell, _ := b.At(x, y)
			if !b.Touched(x, y) || cell.Rune == 0 {
				continue
			}
			drawer.Src = image.NewUniform(color.RGBA{cell.Fg.R, cell.Fg.G, cell.Fg.B, 255})
			drawer.Dot = fixed.P(x*glyphWidth, y*glyphHeight+glyphAscent)
			drawer.DrawString(string(cell.Rune))
		}
	}
	if scale == 1 {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			out.Set(x, y, base.At(x/scale, y/scale))
		}
	}
	return out
}

// WritePNG encodes img to w
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
