package rain

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/parameter/visual"
	"github.com/lixenwraith/glyphrain/render"
	"github.com/lixenwraith/glyphrain/status"
	"github.com/lixenwraith/glyphrain/vmath"
)

// Cell is one character in a drop's trail. Cells[len-1] is the head.
type Cell struct {
	Rune  rune
	Alpha float64
}

// Drop is one falling character column. Drops are recycled in place when
// they fall past the surface, never reallocated.
type Drop struct {
	Slot    int
	X       int
	Y       float64 // head row, fractional
	Speed   float64 // cells per second
	lastRow int
	Cells   []Cell
}

// reset rewinds the drop to a random off-screen start without allocating;
// the cell slice keeps its backing array
func (d *Drop) reset(height int, cfg *config.Rain, rng *vmath.FastRand) {
	d.Y = -rng.Range(0, float64(height))
	d.lastRow = int(d.Y) - 1
	d.Speed = rng.Range(cfg.MinSpeed, cfg.MaxSpeed)
	d.Cells = d.Cells[:0]
}

// Field simulates falling character trails on its own surface
type Field struct {
	cfg     config.Rain
	log     *zap.SugaredLogger
	surface *render.Buffer
	rng     *vmath.FastRand

	drops   []*Drop
	free    []*Drop
	charset []rune
	palette []render.RGB
	head    render.RGB

	width   int
	height  int
	columns int

	onReset func()

	statResets *atomic.Int64
	statDrops  *atomic.Int64
}

// New creates an unlaid-out field; call Layout before driving it
func New(cfg config.Rain, log *zap.SugaredLogger, reg *status.Registry) *Field {
	head, _ := render.ParseHex(visual.RainHead)
	return &Field{
		cfg:        cfg,
		log:        log,
		surface:    render.NewBuffer(0, 0),
		rng:        vmath.NewFastRand(uint64(time.Now().UnixNano())),
		charset:    []rune(cfg.CharSet),
		palette:    config.PaletteRGB(cfg.Palette),
		head:       head,
		statResets: reg.Ints.Get("rain.resets"),
		statDrops:  reg.Ints.Get("rain.drops"),
	}
}

// SetResetHook registers a callback fired when a drop recycles; used for
// optional audio cues
func (f *Field) SetResetHook(fn func()) {
	f.onReset = fn
}

// Surface returns the field's own canvas
func (f *Field) Surface() *render.Buffer { return f.surface }

// DropCount returns the live drop count
func (f *Field) DropCount() int { return len(f.drops) }

// Drops exposes the live drop set for inspection
func (f *Field) Drops() []*Drop { return f.drops }

// Layout sizes the surface to the container and re-derives the column
// count: clamp(floor(width/columnWidth*density), minDrops, maxDrops).
// Drops whose column slot survives the resize are kept as-is so the
// unaffected columns do not visually reset.
func (f *Field) Layout(width, height int) {
	if width <= 0 || height <= 0 {
		f.log.Warnw("rain surface has no area, engine inert", "width", width, "height", height)
		f.width, f.height, f.columns = 0, 0, 0
		f.releaseAll()
		return
	}
	f.width, f.height = width, height
	f.surface.Resize(width, height)

	raw := int(float64(width) / float64(f.cfg.ColumnWidth) * f.cfg.Density)
	f.columns = vmath.ClampInt(raw, f.cfg.MinDrops, f.cfg.MaxDrops)
	f.populate()
}

// populate (re)builds the drop set to the current column count, reusing
// surviving drops and recycling the rest through the free list
func (f *Field) populate() {
	kept := make([]*Drop, f.columns)
	for _, d := range f.drops {
		if d.Slot < f.columns && d.X < f.width {
			kept[d.Slot] = d
		} else {
			f.free = append(f.free, d)
		}
	}
	for slot := 0; slot < f.columns; slot++ {
		if kept[slot] != nil {
			continue
		}
		d := f.obtain()
		d.Slot = slot
		d.X = slot * f.cfg.ColumnWidth
		d.reset(f.height, &f.cfg, f.rng)
		kept[slot] = d
	}
	f.drops = kept
	f.statDrops.Store(int64(len(f.drops)))
}

// obtain pops a pooled drop or allocates one
func (f *Field) obtain() *Drop {
	if n := len(f.free); n > 0 {
		d := f.free[n-1]
		f.free = f.free[:n-1]
		return d
	}
	return &Drop{Cells: make([]Cell, 0, f.cfg.TrailLength)}
}

func (f *Field) releaseAll() {
	f.free = append(f.free, f.drops...)
	f.drops = f.drops[:0]
	f.statDrops.Store(0)
}

// Update advances every drop by dt: the head falls at its speed, crossing
// a row stochastically appends a head character and may mutate a trailing
// one, trailing alphas decay, and drops fully below the surface reset in
// place.
func (f *Field) Update(dt time.Duration) {
	if f.columns == 0 || len(f.charset) == 0 {
		return
	}
	step := dt.Seconds()
	for _, d := range f.drops {
		d.Y += d.Speed * step

		row := int(d.Y)
		for d.lastRow < row {
			d.lastRow++
			if f.rng.Float64() < f.cfg.HeadChance {
				d.Cells = append(d.Cells, Cell{
					Rune:  f.charset[f.rng.Intn(len(f.charset))],
					Alpha: 1.0,
				})
			}
			// Matrix shimmer: occasionally swap a trailing character
			if len(d.Cells) > 1 && f.rng.Float64() < f.cfg.SwapChance {
				i := f.rng.Intn(len(d.Cells) - 1)
				d.Cells[i].Rune = f.charset[f.rng.Intn(len(f.charset))]
			}
		}

		// Trim beyond trail length without reallocating
		if n := len(d.Cells); n > f.cfg.TrailLength {
			copy(d.Cells, d.Cells[n-f.cfg.TrailLength:])
			d.Cells = d.Cells[:f.cfg.TrailLength]
		}

		for i := range d.Cells {
			d.Cells[i].Alpha *= f.cfg.FadeFactor
		}

		if d.Y > float64(f.height+len(d.Cells)) {
			d.reset(f.height, &f.cfg, f.rng)
			f.statResets.Add(1)
			if f.onReset != nil {
				f.onReset()
			}
		}
	}
}

// Draw fades the previous frame with a low-alpha black composite, then
// paints every visible cell with a palette color picked by its position
// in the trail
func (f *Field) Draw() {
	if f.columns == 0 {
		return
	}
	f.surface.Fade(f.cfg.FadeAlpha)
	for _, d := range f.drops {
		n := len(d.Cells)
		if n == 0 {
			continue
		}
		headRow := int(d.Y)
		for i, cell := range d.Cells {
			y := headRow - (n - 1 - i)
			if y < 0 || y >= f.height {
				continue
			}
			t := 1.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			fg := render.LerpPalette(f.palette, t)
			if i == n-1 {
				fg = render.Lerp(fg, f.head, visual.HeadBlend)
			}
			f.surface.SetGlyph(d.X, y, cell.Rune, fg.Scale(cell.Alpha))
		}
	}
}
