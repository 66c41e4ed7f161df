package rain

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/status"
)

func testField(t *testing.T, mutate func(*config.Rain)) *Field {
	t.Helper()
	cfg := config.DefaultRain()
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg, zap.NewNop().Sugar(), status.NewRegistry())
}

func TestColumnCountClamped(t *testing.T) {
	cases := []struct {
		name  string
		width int
		want  int
	}{
		{"wide surface hits ceiling", 200, 80},
		{"narrow surface hits floor", 10, 30},
		{"mid surface lands between", 60, 54},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := testField(t, func(c *config.Rain) {
				c.ColumnWidth = 1
				c.Density = 0.9
				c.MinDrops = 30
				c.MaxDrops = 80
			})
			f.Layout(tc.width, 40)
			if got := f.DropCount(); got != tc.want {
				t.Errorf("width %d: got %d drops, want %d", tc.width, got, tc.want)
			}
		})
	}
}

func TestColumnCountMidRange(t *testing.T) {
	f := testField(t, func(c *config.Rain) {
		c.ColumnWidth = 1
		c.Density = 0.5
		c.MinDrops = 10
		c.MaxDrops = 200
	})
	f.Layout(100, 40)
	if got := f.DropCount(); got != 50 {
		t.Errorf("got %d drops, want 50", got)
	}
}

func TestDropsOccupyDistinctColumns(t *testing.T) {
	f := testField(t, func(c *config.Rain) {
		c.ColumnWidth = 10
		c.MinDrops = 5
		c.MaxDrops = 5
	})
	f.Layout(100, 40)
	if got := f.DropCount(); got != 5 {
		t.Fatalf("got %d drops, want 5", got)
	}
	seen := map[int]bool{}
	for _, d := range f.Drops() {
		if d.X < 0 || d.X >= 100 {
			t.Errorf("drop X %d outside surface", d.X)
		}
		if d.X%10 != 0 {
			t.Errorf("drop X %d not aligned to column width", d.X)
		}
		if seen[d.X] {
			t.Errorf("column %d occupied twice", d.X)
		}
		seen[d.X] = true
	}
}

func TestDropsStartAboveSurface(t *testing.T) {
	f := testField(t, nil)
	f.Layout(80, 24)
	for _, d := range f.Drops() {
		if d.Y > 0 {
			t.Errorf("fresh drop starts at Y=%.1f, want <= 0", d.Y)
		}
		if d.Speed < f.cfg.MinSpeed || d.Speed > f.cfg.MaxSpeed {
			t.Errorf("drop speed %.1f outside [%.1f, %.1f]", d.Speed, f.cfg.MinSpeed, f.cfg.MaxSpeed)
		}
	}
}

func TestTrailLengthBounded(t *testing.T) {
	f := testField(t, func(c *config.Rain) {
		c.TrailLength = 6
		c.HeadChance = 1.0
	})
	f.Layout(80, 24)
	for i := 0; i < 600; i++ {
		f.Update(16 * time.Millisecond)
		for _, d := range f.Drops() {
			if len(d.Cells) > 6 {
				t.Fatalf("trail grew to %d cells, limit 6", len(d.Cells))
			}
		}
	}
}

func TestDropResetsInPlace(t *testing.T) {
	f := testField(t, nil)
	f.Layout(80, 24)

	d := f.Drops()[0]
	grown := cap(d.Cells)
	// Park the head well below the surface with the row cursor caught up so
	// the next update triggers a recycle
	d.Y = float64(24 + len(d.Cells) + 1)
	d.lastRow = int(d.Y)

	resets := 0
	f.SetResetHook(func() { resets++ })
	f.Update(time.Millisecond)

	if f.Drops()[0] != d {
		t.Fatal("reset must recycle the drop in place, not reallocate")
	}
	if d.Y > 0 {
		t.Errorf("reset drop should restart above the surface, got Y=%.1f", d.Y)
	}
	if len(d.Cells) != 0 {
		t.Errorf("reset drop should have an empty trail, got %d cells", len(d.Cells))
	}
	if cap(d.Cells) < grown {
		t.Error("reset must keep the trail's backing array")
	}
	if resets != 1 {
		t.Errorf("reset hook fired %d times, want 1", resets)
	}
}

func TestLayoutKeepsSurvivingColumns(t *testing.T) {
	f := testField(t, func(c *config.Rain) {
		c.ColumnWidth = 1
		c.Density = 1.0
		c.MinDrops = 1
		c.MaxDrops = 500
	})
	f.Layout(40, 24)
	before := make(map[int]*Drop)
	for _, d := range f.Drops() {
		before[d.Slot] = d
	}

	f.Layout(60, 24)
	if got := f.DropCount(); got != 60 {
		t.Fatalf("got %d drops after grow, want 60", got)
	}
	for _, d := range f.Drops() {
		if prev, ok := before[d.Slot]; ok && prev != d {
			t.Errorf("slot %d replaced its drop across a grow", d.Slot)
		}
	}

	f.Layout(20, 24)
	for _, d := range f.Drops() {
		if d.Slot >= 20 {
			t.Errorf("slot %d survived a shrink to 20 columns", d.Slot)
		}
		if prev, ok := before[d.Slot]; ok && prev != d {
			t.Errorf("slot %d replaced its drop across a shrink", d.Slot)
		}
	}
}

func TestZeroSizeSurfaceInert(t *testing.T) {
	f := testField(t, nil)
	f.Layout(0, 0)
	if f.DropCount() != 0 {
		t.Errorf("zero-size layout left %d drops", f.DropCount())
	}
	// Must not panic or spin
	f.Update(16 * time.Millisecond)
	f.Draw()
}

func TestDrawPaintsWithinBounds(t *testing.T) {
	f := testField(t, func(c *config.Rain) {
		c.HeadChance = 1.0
	})
	f.Layout(40, 12)
	for i := 0; i < 300; i++ {
		f.Update(16 * time.Millisecond)
		f.Draw()
	}
	s := f.Surface()
	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("surface %dx%d, want 40x12", s.Width(), s.Height())
	}
	lit := 0
	for y := 0; y < 12; y++ {
		for x := 0; x < 40; x++ {
			if s.Touched(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("a settled field should have visible cells")
	}
}
