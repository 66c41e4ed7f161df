package trail

import (
	"math"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/config"
	"github.com/lixenwraith/glyphrain/engine"
	"github.com/lixenwraith/glyphrain/parameter"
	"github.com/lixenwraith/glyphrain/render"
	"github.com/lixenwraith/glyphrain/status"
	"github.com/lixenwraith/glyphrain/vmath"
)

// Particle is one short-lived glowing character. Particles are pooled:
// retirement pushes onto the free list, emission pops from it, and fresh
// allocation happens only until live+pooled reach the configured maximum.
type Particle struct {
	Pos  vmath.Vec2
	Vel  vmath.Vec2
	Life time.Duration // remaining
	Max  time.Duration // original, for the age ratio

	Alpha float64
	Size  float64
	Color render.RGB
	Rune  rune

	spin float64 // rune cycling phase, conveys rotation in cell space
	seq  uint64  // emission order, for oldest-eviction
}

// Engine emits and animates pointer-trail particles on its own overlay
// surface. Not safe for concurrent use; the controller serializes pointer
// events into the frame step.
type Engine struct {
	cfg     config.Trail
	log     *zap.SugaredLogger
	surface *render.Buffer
	rng     *vmath.FastRand

	live      []*Particle
	free      []*Particle
	allocated int
	seq       uint64

	charset []rune
	palette []render.RGB
	width   int
	height  int

	// Smoothed pointer state
	lastEvent   time.Time
	smoothed    vmath.Vec2
	velocity    vmath.Vec2
	havePointer bool

	scratch []*Particle // reused draw-order buffer

	statSpawned  *atomic.Int64
	statRecycled *atomic.Int64
	statEvicted  *atomic.Int64
}

// New creates an unlaid-out engine; call Layout before driving it
func New(cfg config.Trail, log *zap.SugaredLogger, reg *status.Registry) *Engine {
	return &Engine{
		cfg:          cfg,
		log:          log,
		surface:      render.NewBuffer(0, 0),
		rng:          vmath.NewFastRand(uint64(time.Now().UnixNano())),
		charset:      []rune(cfg.CharSet),
		palette:      config.PaletteRGB(cfg.Palette),
		statSpawned:  reg.Ints.Get("trail.spawned"),
		statRecycled: reg.Ints.Get("trail.recycled"),
		statEvicted:  reg.Ints.Get("trail.evicted"),
	}
}

// Surface returns the engine's own overlay canvas
func (e *Engine) Surface() *render.Buffer { return e.surface }

// LiveCount returns the number of live particles
func (e *Engine) LiveCount() int { return len(e.live) }

// FreeCount returns the number of pooled particles
func (e *Engine) FreeCount() int { return len(e.free) }

// Live exposes the live set for inspection
func (e *Engine) Live() []*Particle { return e.live }

// Layout sizes the overlay; live particles are clamped into the new
// bounds rather than discarded
func (e *Engine) Layout(width, height int) {
	if width <= 0 || height <= 0 {
		e.log.Warnw("trail surface has no area, engine inert", "width", width, "height", height)
		e.width, e.height = 0, 0
		return
	}
	e.width, e.height = width, height
	e.surface.Resize(width, height)
	for _, p := range e.live {
		p.Pos.X = vmath.Clamp(p.Pos.X, 0, float64(width-1))
		p.Pos.Y = vmath.Clamp(p.Pos.Y, 0, float64(height-1))
	}
}

// OnPointerMove consumes a pointer event: throttled, smoothed with an
// exponential moving average, and converted into a spawn burst sized by
// the instantaneous pointer speed
func (e *Engine) OnPointerMove(ev engine.Event) {
	if e.width == 0 || e.height == 0 || len(e.charset) == 0 {
		return
	}
	if ev.Kind != engine.EventPointerMove {
		return
	}
	raw := vmath.Vec2{X: float64(ev.X), Y: float64(ev.Y)}
	if !e.havePointer {
		e.havePointer = true
		e.smoothed = raw
		e.lastEvent = ev.When
		return
	}
	elapsed := ev.When.Sub(e.lastEvent)
	if elapsed < e.cfg.Throttle() {
		return
	}
	e.lastEvent = ev.When

	prev := e.smoothed
	e.smoothed = e.smoothed.Add(raw.Sub(e.smoothed).Scale(e.cfg.Smoothing))
	dt := elapsed.Seconds()
	if dt > 0 {
		e.velocity = e.smoothed.Sub(prev).Scale(1 / dt)
	}

	speed := e.velocity.Magnitude()
	count := 1 + int(speed/parameter.TrailSpeedPerSpawn)
	count = vmath.ClampInt(count, 1, e.cfg.MaxSpawnPerEvent)
	for i := 0; i < count; i++ {
		e.emit(speed)
	}
}

// emit spawns one particle near the smoothed pointer with jitter scaled
// by pointer speed
func (e *Engine) emit(speed float64) {
	p := e.obtain()
	if p == nil {
		return
	}
	jitter := 1.0 + speed*0.04
	p.Pos = e.smoothed.Add(vmath.Vec2{
		X: e.rng.Range(-1, 1) * jitter,
		Y: e.rng.Range(-1, 1) * jitter * 0.5,
	})
	p.Vel = e.velocity.Scale(parameter.TrailVelocityInherit).Add(vmath.Vec2{
		X: e.rng.Range(-parameter.TrailJitter, parameter.TrailJitter),
		Y: e.rng.Range(-parameter.TrailJitter, parameter.TrailJitter),
	})
	p.Max = time.Duration(e.rng.Range(float64(e.cfg.LifetimeMin()), float64(e.cfg.LifetimeMax())))
	p.Life = p.Max
	p.Alpha = 1.0
	p.Size = 1.0
	p.Color = e.palette[e.rng.Intn(len(e.palette))]
	p.Rune = e.charset[e.rng.Intn(len(e.charset))]
	p.spin = e.rng.Float64()
	p.seq = e.seq
	e.seq++
	e.live = append(e.live, p)
	e.statSpawned.Add(1)
}

// obtain returns a particle to initialize: pooled if available, freshly
// allocated under the ceiling, otherwise the oldest live particle is
// evicted (or nil when the refuse-spawn policy is configured)
func (e *Engine) obtain() *Particle {
	if n := len(e.free); n > 0 {
		p := e.free[n-1]
		e.free = e.free[:n-1]
		return p
	}
	if e.allocated < e.cfg.MaxParticles {
		e.allocated++
		return &Particle{}
	}
	if !e.cfg.EvictOldest || len(e.live) == 0 {
		return nil
	}
	oldest := 0
	for i, p := range e.live {
		if p.seq < e.live[oldest].seq {
			oldest = i
		}
	}
	p := e.live[oldest]
	e.live = append(e.live[:oldest], e.live[oldest+1:]...)
	e.statEvicted.Add(1)
	return p
}

// retire moves live[i] to the free pool
func (e *Engine) retire(i int) {
	p := e.live[i]
	e.live[i] = e.live[len(e.live)-1]
	e.live = e.live[:len(e.live)-1]
	e.free = append(e.free, p)
	e.statRecycled.Add(1)
}

// Update integrates particle physics for dt: gravity, multiplicative
// velocity decay, lifetime decrement, and age-ratio opacity/size; spent
// particles return to the pool
func (e *Engine) Update(dt time.Duration) {
	if e.width == 0 || e.height == 0 {
		return
	}
	step := dt.Seconds()
	// Damping is specified per 60fps frame; normalize to wall time
	damp := math.Pow(e.cfg.Damping, step*60)
	margin := float64(parameter.TrailBoundsMargin)

	for i := 0; i < len(e.live); {
		p := e.live[i]
		p.Vel.Y += e.cfg.Gravity * step
		p.Vel = p.Vel.Scale(damp)
		p.Pos = p.Pos.Add(p.Vel.Scale(step))
		p.Life -= dt

		p.spin += parameter.TrailSpinRate * step
		if p.spin >= 1 {
			p.spin -= 1
			p.Rune = e.charset[e.rng.Intn(len(e.charset))]
		}

		ratio := vmath.Clamp(float64(p.Life)/float64(p.Max), 0, 1)
		p.Alpha = ratio
		p.Size = 0.5 + 0.5*ratio

		out := p.Pos.X < -margin || p.Pos.X > float64(e.width-1)+margin ||
			p.Pos.Y < -margin || p.Pos.Y > float64(e.height-1)+margin
		if p.Life <= 0 || p.Alpha < parameter.TrailVisibilityEpsilon || out {
			e.retire(i)
			continue
		}
		i++
	}
}

// Draw clears the overlay and paints live particles in ascending opacity
// order so brighter particles are never occluded by fainter ones; a halo
// is accumulated additively around particles that are still large
func (e *Engine) Draw() {
	if e.width == 0 || e.height == 0 {
		return
	}
	e.surface.Clear()

	e.scratch = e.scratch[:0]
	e.scratch = append(e.scratch, e.live...)
	sort.Slice(e.scratch, func(i, j int) bool {
		return e.scratch[i].Alpha < e.scratch[j].Alpha
	})

	for _, p := range e.scratch {
		x := int(math.Round(p.Pos.X))
		y := int(math.Round(p.Pos.Y))
		if p.Size > 0.6 {
			halo := p.Color.Scale(p.Alpha * e.cfg.GlowIntensity * 0.5)
			e.surface.AddFg(x-1, y, halo)
			e.surface.AddFg(x+1, y, halo)
			e.surface.AddFg(x, y-1, halo)
			e.surface.AddFg(x, y+1, halo)
		}
		fg := render.Lerp(p.Color, render.RGBWhite, 0.25).Scale(p.Alpha)
		e.surface.SetGlyph(x, y, p.Rune, fg)
	}
}
