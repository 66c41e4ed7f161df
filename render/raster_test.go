package render

import (
	"bytes"
	"image/png"
	"testing"
)

func TestRasterizeDimensions(t *testing.T) {
	b := NewBuffer(10, 4)
	img := Rasterize(b, 1)
	if got := img.Bounds().Dx(); got != 10*glyphWidth {
		t.Errorf("width %d, want %d", got, 10*glyphWidth)
	}
	if got := img.Bounds().Dy(); got != 4*glyphHeight {
		t.Errorf("height %d, want %d", got, 4*glyphHeight)
	}

	scaled := Rasterize(b, 3)
	if scaled.Bounds().Dx() != 30*glyphWidth || scaled.Bounds().Dy() != 12*glyphHeight {
		t.Errorf("scaled bounds %v", scaled.Bounds())
	}
}

func TestRasterizePaintsGlyphs(t *testing.T) {
	b := NewBuffer(4, 2)
	b.SetGlyph(1, 0, 'M', RGB{R: 0, G: 255, B: 65})
	img := Rasterize(b, 1)

	lit := false
	for y := 0; y < glyphHeight && !lit; y++ {
		for x := glyphWidth; x < 2*glyphWidth; x++ {
			_, g, _, _ := img.At(x, y).RGBA()
			if g > 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("glyph cell produced no pixels")
	}
}

func TestWritePNGRoundTrip(t *testing.T) {
	b := NewBuffer(3, 3)
	b.SetGlyph(0, 0, 'x', RGBWhite)
	img := Rasterize(b, 2)

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}
