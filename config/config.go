package config

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/glyphrain/parameter"
	"github.com/lixenwraith/glyphrain/parameter/visual"
	"github.com/lixenwraith/glyphrain/render"
)

// Rain configures a RainField instance. Immutable after sanitation.
type Rain struct {
	CharSet     string   `yaml:"charset"`
	ColumnWidth int      `yaml:"column_width"`
	Density     float64  `yaml:"density"`
	MinDrops    int      `yaml:"min_drops"`
	MaxDrops    int      `yaml:"max_drops"`
	MinSpeed    float64  `yaml:"min_speed"`
	MaxSpeed    float64  `yaml:"max_speed"`
	TrailLength int      `yaml:"trail_length"`
	HeadChance  float64  `yaml:"head_chance"`
	SwapChance  float64  `yaml:"swap_chance"`
	FadeFactor  float64  `yaml:"fade_factor"`
	FadeAlpha   float64  `yaml:"fade_alpha"`
	Palette     []string `yaml:"palette"`
}

// Trail configures a ParticleTrail instance. Immutable after sanitation.
type Trail struct {
	CharSet          string   `yaml:"charset"`
	MaxParticles     int      `yaml:"max_particles"`
	MaxSpawnPerEvent int      `yaml:"max_spawn_per_event"`
	ThrottleMs       int      `yaml:"throttle_ms"`
	Smoothing        float64  `yaml:"smoothing"`
	Gravity          float64  `yaml:"gravity"`
	Damping          float64  `yaml:"damping"`
	LifetimeMinMs    int      `yaml:"lifetime_min_ms"`
	LifetimeMaxMs    int      `yaml:"lifetime_max_ms"`
	GlowIntensity    float64  `yaml:"glow_intensity"`
	EvictOldest      bool     `yaml:"evict_oldest"`
	Palette          []string `yaml:"palette"`
}

// Engine configures the frame driver and lifecycle controller
type Engine struct {
	FPS              int  `yaml:"fps"`
	ResizeDebounceMs int  `yaml:"resize_debounce_ms"`
	Sound            bool `yaml:"sound"`
}

// Config is the full runtime configuration
type Config struct {
	Engine Engine `yaml:"engine"`
	Rain   Rain   `yaml:"rain"`
	Trail  Trail  `yaml:"trail"`
}

// DefaultRain returns the built-in RainField configuration
func DefaultRain() Rain {
	return Rain{
		CharSet:     parameter.RainCharSet,
		ColumnWidth: parameter.RainColumnWidth,
		Density:     parameter.RainDensity,
		MinDrops:    parameter.RainMinDrops,
		MaxDrops:    parameter.RainMaxDrops,
		MinSpeed:    parameter.RainMinSpeed,
		MaxSpeed:    parameter.RainMaxSpeed,
		TrailLength: parameter.RainTrailLength,
		HeadChance:  parameter.RainHeadChance,
		SwapChance:  parameter.RainSwapChance,
		FadeFactor:  parameter.RainFadeFactor,
		FadeAlpha:   parameter.RainFadeAlpha,
		Palette:     append([]string(nil), visual.RainPalette...),
	}
}

// DefaultTrail returns the built-in ParticleTrail configuration
func DefaultTrail() Trail {
	return Trail{
		CharSet:          parameter.TrailCharSet,
		MaxParticles:     parameter.TrailMaxParticles,
		MaxSpawnPerEvent: parameter.TrailMaxSpawnPerEvent,
		ThrottleMs:       int(parameter.TrailThrottle / time.Millisecond),
		Smoothing:        parameter.TrailSmoothing,
		Gravity:          parameter.TrailGravity,
		Damping:          parameter.TrailDamping,
		LifetimeMinMs:    int(parameter.TrailLifetimeMin / time.Millisecond),
		LifetimeMaxMs:    int(parameter.TrailLifetimeMax / time.Millisecond),
		GlowIntensity:    parameter.TrailGlowIntensity,
		EvictOldest:      true,
		Palette:          append([]string(nil), visual.TrailPalette...),
	}
}

// DefaultEngine returns the built-in driver configuration
func DefaultEngine() Engine {
	return Engine{
		FPS:              parameter.FrameRateCap,
		ResizeDebounceMs: int(parameter.ResizeDebounce / time.Millisecond),
		Sound:            false,
	}
}

// Default returns the full built-in configuration
func Default() Config {
	return Config{
		Engine: DefaultEngine(),
		Rain:   DefaultRain(),
		Trail:  DefaultTrail(),
	}
}

// Sanitized returns a copy with every invalid option replaced by its
// default. Invalid options are dropped individually, never fatal.
func (c Config) Sanitized(log *zap.SugaredLogger) Config {
	c.Engine = c.Engine.sanitized(log)
	c.Rain = c.Rain.sanitized(log)
	c.Trail = c.Trail.sanitized(log)
	return c
}

func fallbackInt(log *zap.SugaredLogger, name string, v, lo, hi, def int) int {
	if v < lo || v > hi {
		log.Debugw("invalid option, using default", "option", name, "value", v, "default", def)
		return def
	}
	return v
}

func fallbackFloat(log *zap.SugaredLogger, name string, v, lo, hi, def float64) float64 {
	if v < lo || v > hi {
		log.Debugw("invalid option, using default", "option", name, "value", v, "default", def)
		return def
	}
	return v
}

// sanitizePalette drops invalid hex tokens; an empty result falls back to
// the default palette wholesale
func sanitizePalette(log *zap.SugaredLogger, name string, in, def []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if render.ValidHex(s) {
			out = append(out, s)
		} else {
			log.Debugw("invalid color token dropped", "option", name, "value", s)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

func (c Rain) sanitized(log *zap.SugaredLogger) Rain {
	def := DefaultRain()
	if c.CharSet == "" {
		log.Debugw("empty charset, using default", "option", "rain.charset")
		c.CharSet = def.CharSet
	}
	c.ColumnWidth = fallbackInt(log, "rain.column_width", c.ColumnWidth, 1, 1<<16, def.ColumnWidth)
	c.Density = fallbackFloat(log, "rain.density", c.Density, 0.05, 3.0, def.Density)
	c.MinDrops = fallbackInt(log, "rain.min_drops", c.MinDrops, 1, 1<<16, def.MinDrops)
	c.MaxDrops = fallbackInt(log, "rain.max_drops", c.MaxDrops, 1, 1<<16, def.MaxDrops)
	if c.MinDrops > c.MaxDrops {
		log.Debugw("min_drops exceeds max_drops, using defaults", "min", c.MinDrops, "max", c.MaxDrops)
		c.MinDrops, c.MaxDrops = def.MinDrops, def.MaxDrops
	}
	c.MinSpeed = fallbackFloat(log, "rain.min_speed", c.MinSpeed, 0.1, 1000, def.MinSpeed)
	c.MaxSpeed = fallbackFloat(log, "rain.max_speed", c.MaxSpeed, 0.1, 1000, def.MaxSpeed)
	if c.MinSpeed > c.MaxSpeed {
		log.Debugw("min_speed exceeds max_speed, using defaults", "min", c.MinSpeed, "max", c.MaxSpeed)
		c.MinSpeed, c.MaxSpeed = def.MinSpeed, def.MaxSpeed
	}
	c.TrailLength = fallbackInt(log, "rain.trail_length", c.TrailLength, 1, 512, def.TrailLength)
	c.HeadChance = fallbackFloat(log, "rain.head_chance", c.HeadChance, 0.01, 1.0, def.HeadChance)
	c.SwapChance = fallbackFloat(log, "rain.swap_chance", c.SwapChance, 0, 1.0, def.SwapChance)
	c.FadeFactor = fallbackFloat(log, "rain.fade_factor", c.FadeFactor, 0.01, 1.0, def.FadeFactor)
	c.FadeAlpha = fallbackFloat(log, "rain.fade_alpha", c.FadeAlpha, 0.01, 1.0, def.FadeAlpha)
	c.Palette = sanitizePalette(log, "rain.palette", c.Palette, def.Palette)
	return c
}

func (c Trail) sanitized(log *zap.SugaredLogger) Trail {
	def := DefaultTrail()
	if c.CharSet == "" {
		log.Debugw("empty charset, using default", "option", "trail.charset")
		c.CharSet = def.CharSet
	}
	c.MaxParticles = fallbackInt(log, "trail.max_particles", c.MaxParticles, 1, 1<<16, def.MaxParticles)
	c.MaxSpawnPerEvent = fallbackInt(log, "trail.max_spawn_per_event", c.MaxSpawnPerEvent, 1, 256, def.MaxSpawnPerEvent)
	c.ThrottleMs = fallbackInt(log, "trail.throttle_ms", c.ThrottleMs, 0, 1000, def.ThrottleMs)
	c.Smoothing = fallbackFloat(log, "trail.smoothing", c.Smoothing, 0.01, 1.0, def.Smoothing)
	c.Gravity = fallbackFloat(log, "trail.gravity", c.Gravity, 0, 1000, def.Gravity)
	c.Damping = fallbackFloat(log, "trail.damping", c.Damping, 0.01, 1.0, def.Damping)
	c.LifetimeMinMs = fallbackInt(log, "trail.lifetime_min_ms", c.LifetimeMinMs, 1, 60000, def.LifetimeMinMs)
	c.LifetimeMaxMs = fallbackInt(log, "trail.lifetime_max_ms", c.LifetimeMaxMs, 1, 60000, def.LifetimeMaxMs)
	if c.LifetimeMinMs > c.LifetimeMaxMs {
		log.Debugw("lifetime_min exceeds lifetime_max, using defaults", "min", c.LifetimeMinMs, "max", c.LifetimeMaxMs)
		c.LifetimeMinMs, c.LifetimeMaxMs = def.LifetimeMinMs, def.LifetimeMaxMs
	}
	c.GlowIntensity = fallbackFloat(log, "trail.glow_intensity", c.GlowIntensity, 0, 4.0, def.GlowIntensity)
	c.Palette = sanitizePalette(log, "trail.palette", c.Palette, def.Palette)
	return c
}

func (c Engine) sanitized(log *zap.SugaredLogger) Engine {
	def := DefaultEngine()
	c.FPS = fallbackInt(log, "engine.fps", c.FPS, 1, 240, def.FPS)
	c.ResizeDebounceMs = fallbackInt(log, "engine.resize_debounce_ms", c.ResizeDebounceMs, 0, 5000, def.ResizeDebounceMs)
	return c
}

// Throttle returns the pointer-event throttle as a duration
func (c Trail) Throttle() time.Duration {
	return time.Duration(c.ThrottleMs) * time.Millisecond
}

// LifetimeMin returns the lower lifetime bound as a duration
func (c Trail) LifetimeMin() time.Duration {
	return time.Duration(c.LifetimeMinMs) * time.Millisecond
}

// LifetimeMax returns the upper lifetime bound as a duration
func (c Trail) LifetimeMax() time.Duration {
	return time.Duration(c.LifetimeMaxMs) * time.Millisecond
}

// ResizeDebounce returns the resize coalescing window as a duration
func (c Engine) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// PaletteRGB parses a sanitized palette into color values, skipping any
// token that fails to parse
func PaletteRGB(palette []string) []render.RGB {
	out := make([]render.RGB, 0, len(palette))
	for _, s := range palette {
		if c, err := render.ParseHex(s); err == nil {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = append(out, render.RGBWhite)
	}
	return out
}
