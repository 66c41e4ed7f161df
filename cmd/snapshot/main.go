// Command snapshot renders the rain animation headlessly and writes a
// frame to a PNG file. Useful for previewing palette and density tweaks
// without a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/rain"
	"github.com/lixenwraith/glyphrain/render"
	"github.com/lixenwraith/glyphrain/status"
)

// The raster font only covers basic latin, so the default charset here
// avoids the katakana used on real terminals
const asciiCharSet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ$+*:=."

func main() {
	width := flag.Int("width", 120, "surface width in cells")
	height := flag.Int("height", 40, "surface height in cells")
	frames := flag.Int("frames", 180, "frames to simulate before capturing")
	step := flag.Duration("step", 16*time.Millisecond, "simulated frame interval")
	out := flag.String("o", "rain.png", "output PNG path")
	scale := flag.Int("scale", 2, "integer upscale factor")
	chars := flag.String("chars", asciiCharSet, "rain character set")
	density := flag.Float64("density", 0, "rain column density (overrides default)")
	flag.Parse()

	cfg := config.Default()
	cfg.Rain.CharSet = *chars
	if *density > 0 {
		cfg.Rain.Density = *density
	}
	cfg = cfg.Sanitized(zap.NewNop().Sugar())

	field := rain.New(cfg.Rain, zap.NewNop().Sugar(), status.NewRegistry())
	field.Layout(*width, *height)
	for i := 0; i < *frames; i++ {
		field.Update(*step)
		field.Draw()
	}

	img := render.Rasterize(field.Surface(), *scale)
	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := render.WritePNG(f, img); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d cells, %d frames)\n", *out, *width, *height, *frames)
}
