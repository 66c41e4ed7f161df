package render

import "testing"

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#00FF41")
	if err != nil {
		t.Fatal(err)
	}
	if c != (RGB{R: 0, G: 255, B: 65}) {
		t.Errorf("got %v", c)
	}
	if _, err := ParseHex("green"); err == nil {
		t.Error("non-hex token should fail")
	}
	if ValidHex("#zzzzzz") {
		t.Error("invalid digits should not validate")
	}
	if !ValidHex("#ffffff") {
		t.Error("lowercase hex should validate")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{R: 100, G: 100, B: 100}
	b := RGB{R: 200, G: 0, B: 0}
	if a.Blend(b, 0) != a {
		t.Error("alpha 0 should return dst")
	}
	if a.Blend(b, 1) != b {
		t.Error("alpha 1 should return src")
	}
	mid := a.Blend(b, 0.5)
	if mid.R != 150 || mid.G != 50 {
		t.Errorf("got %v", mid)
	}
}

func TestScaleClamps(t *testing.T) {
	c := RGB{R: 200, G: 10, B: 0}
	if got := c.Scale(2); got.R != 255 || got.G != 20 {
		t.Errorf("got %v", got)
	}
	if c.Scale(-1) != RGBBlack {
		t.Error("negative factor should floor to black")
	}
}

func TestLerpPalette(t *testing.T) {
	stops := []RGB{{R: 0}, {R: 100}, {R: 200}}
	if got := LerpPalette(stops, 0); got != stops[0] {
		t.Errorf("t=0 got %v", got)
	}
	if got := LerpPalette(stops, 1); got != stops[2] {
		t.Errorf("t=1 got %v", got)
	}
	if got := LerpPalette(stops, 2); got != stops[2] {
		t.Errorf("t>1 should clamp, got %v", got)
	}
	mid := LerpPalette(stops, 0.5)
	if mid.R < 95 || mid.R > 105 {
		t.Errorf("t=0.5 should land near the middle stop, got %v", mid)
	}
	if got := LerpPalette(nil, 0.5); got != RGBWhite {
		t.Errorf("empty palette falls back to white, got %v", got)
	}
	if got := LerpPalette(stops[:1], 0.9); got != stops[0] {
		t.Errorf("single stop is constant, got %v", got)
	}
}
