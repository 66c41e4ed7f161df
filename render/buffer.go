package render

// Cell is a single surface cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Buffer is a cell compositor owned by exactly one animation engine.
// Cells persist between frames so that Fade can produce trailing decay
// instead of a hard clear.
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{
		cells:   make([]Cell, width*height),
		touched: make([]bool, width*height),
		width:   width,
		height:  height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in cells
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *Buffer) Height() int { return b.height }

// Resize adjusts dimensions, preserving the overlapping content region so
// a re-layout does not visibly reset the animation
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height {
		return
	}
	cells := make([]Cell, width*height)
	touched := make([]bool, width*height)
	keepW := min(b.width, width)
	for y := 0; y < min(b.height, height); y++ {
		copy(cells[y*width:y*width+keepW], b.cells[y*b.width:y*b.width+keepW])
		copy(touched[y*width:y*width+keepW], b.touched[y*b.width:y*b.width+keepW])
	}
	b.cells = cells
	b.touched = touched
	b.width = width
	b.height = height
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: 0, Fg: RGBBlack, Bg: RGBBlack}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// Fade composites a low-alpha black rectangle over the whole surface,
// producing the trailing decay effect. Cells whose foreground falls to
// near-black are released entirely.
func (b *Buffer) Fade(alpha float64) {
	for i := range b.cells {
		c := &b.cells[i]
		if !b.touched[i] {
			continue
		}
		c.Fg = c.Fg.Blend(RGBBlack, alpha)
		c.Bg = c.Bg.Blend(RGBBlack, alpha)
		if c.Fg.R < 8 && c.Fg.G < 8 && c.Fg.B < 8 {
			*c = Cell{}
			b.touched[i] = false
		}
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetGlyph writes a rune with foreground color (opaque replace)
func (b *Buffer) SetGlyph(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Rune = r
	b.cells[idx].Fg = fg
	b.touched[idx] = true
}

// AddFg accumulates light into a cell's foreground without replacing its
// rune; empty cells receive a block shade so the halo is visible
func (b *Buffer) AddFg(x, y int, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	dst.Fg = dst.Fg.Add(fg)
	if dst.Rune == 0 {
		dst.Rune = '░'
	}
	b.touched[idx] = true
}

// At returns the cell at (x, y)
func (b *Buffer) At(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Touched reports whether the cell at (x, y) holds live content
func (b *Buffer) Touched(x, y int) bool {
	return b.inBounds(x, y) && b.touched[y*b.width+x]
}

// CompositeTo overlays this buffer's live cells onto dst; untouched cells
// leave dst unchanged so lower layers show through
func (b *Buffer) CompositeTo(dst *Buffer) {
	w := min(b.width, dst.width)
	h := min(b.height, dst.height)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*b.width + x
			if !b.touched[idx] {
				continue
			}
			di := y*dst.width + x
			dst.cells[di] = b.cells[idx]
			dst.touched[di] = true
		}
	}
}
