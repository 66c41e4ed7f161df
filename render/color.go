package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from the terminal
// backend's color type
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// ParseHex converts a "#RRGGBB" token to RGB
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// ValidHex reports whether s is a parseable hex color token
func ValidHex(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Add performs additive blend with clamping (light accumulation)
func (dst RGB) Add(src RGB) RGB {
	return RGB{
		R: uint8(min(int(dst.R)+int(src.R), 255)),
		G: uint8(min(int(dst.G)+int(src.G), 255)),
		B: uint8(min(int(dst.B)+int(src.B), 255)),
	}
}

// Max returns per-channel maximum (non-destructive highlight)
func (dst RGB) Max(src RGB) RGB {
	return RGB{
		R: max(dst.R, src.R),
		G: max(dst.G, src.G),
		B: max(dst.B, src.B),
	}
}

// Scale multiplies all channels by f, clamped to [0..255]
func (c RGB) Scale(f float64) RGB {
	if f <= 0 {
		return RGBBlack
	}
	return RGB{
		R: uint8(min(float64(c.R)*f, 255)),
		G: uint8(min(float64(c.G)*f, 255)),
		B: uint8(min(float64(c.B)*f, 255)),
	}
}

// Lerp interpolates between a and b in RGB space by t in [0..1]
func Lerp(a, b RGB, t float64) RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bb := ca.BlendRgb(cb, t).Clamped().RGB255()
	return RGB{r, g, bb}
}

// LerpPalette interpolates across an ordered stop list by t in [0..1]
func LerpPalette(stops []RGB, t float64) RGB {
	switch len(stops) {
	case 0:
		return RGBWhite
	case 1:
		return stops[0]
	}
	if t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	span := t * float64(len(stops)-1)
	idx := int(span)
	return Lerp(stops[idx], stops[idx+1], span-float64(idx))
}
