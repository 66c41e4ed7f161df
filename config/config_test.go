package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSanitizedReplacesInvalidOptions(t *testing.T) {
	log := zap.NewNop().Sugar()
	def := Default()

	cfg := Default()
	cfg.Rain.Density = -5
	cfg.Rain.TrailLength = 0
	cfg.Rain.HeadChance = 1.5
	cfg.Trail.MaxParticles = -1
	cfg.Trail.Damping = 2.0
	cfg.Engine.FPS = 9999

	got := cfg.Sanitized(log)
	if got.Rain.Density != def.Rain.Density {
		t.Errorf("density %v not reset to default %v", got.Rain.Density, def.Rain.Density)
	}
	if got.Rain.TrailLength != def.Rain.TrailLength {
		t.Errorf("trail_length %d not reset", got.Rain.TrailLength)
	}
	if got.Rain.HeadChance != def.Rain.HeadChance {
		t.Errorf("head_chance %v not reset", got.Rain.HeadChance)
	}
	if got.Trail.MaxParticles != def.Trail.MaxParticles {
		t.Errorf("max_particles %d not reset", got.Trail.MaxParticles)
	}
	if got.Trail.Damping != def.Trail.Damping {
		t.Errorf("damping %v not reset", got.Trail.Damping)
	}
	if got.Engine.FPS != def.Engine.FPS {
		t.Errorf("fps %d not reset", got.Engine.FPS)
	}
}

func TestSanitizedKeepsValidOptions(t *testing.T) {
	cfg := Default()
	cfg.Rain.Density = 1.5
	cfg.Trail.MaxParticles = 32
	cfg.Engine.FPS = 30

	got := cfg.Sanitized(zap.NewNop().Sugar())
	if got.Rain.Density != 1.5 || got.Trail.MaxParticles != 32 || got.Engine.FPS != 30 {
		t.Errorf("valid options changed: %v %v %v",
			got.Rain.Density, got.Trail.MaxParticles, got.Engine.FPS)
	}
}

func TestSanitizedSwappedRanges(t *testing.T) {
	def := Default()
	cfg := Default()
	cfg.Rain.MinSpeed = 50
	cfg.Rain.MaxSpeed = 10
	cfg.Trail.LifetimeMinMs = 2000
	cfg.Trail.LifetimeMaxMs = 100

	got := cfg.Sanitized(zap.NewNop().Sugar())
	if got.Rain.MinSpeed != def.Rain.MinSpeed || got.Rain.MaxSpeed != def.Rain.MaxSpeed {
		t.Errorf("inverted speed range not reset: [%v, %v]", got.Rain.MinSpeed, got.Rain.MaxSpeed)
	}
	if got.Trail.LifetimeMinMs != def.Trail.LifetimeMinMs || got.Trail.LifetimeMaxMs != def.Trail.LifetimeMaxMs {
		t.Errorf("inverted lifetime range not reset: [%d, %d]", got.Trail.LifetimeMinMs, got.Trail.LifetimeMaxMs)
	}
}

func TestSanitizedPalette(t *testing.T) {
	cfg := Default()
	cfg.Rain.Palette = []string{"#00FF41", "notacolor", "#123456"}
	got := cfg.Sanitized(zap.NewNop().Sugar())
	if len(got.Rain.Palette) != 2 {
		t.Fatalf("got %d palette tokens, want 2: %v", len(got.Rain.Palette), got.Rain.Palette)
	}

	cfg.Rain.Palette = []string{"bad", "worse"}
	got = cfg.Sanitized(zap.NewNop().Sugar())
	def := DefaultRain()
	if len(got.Rain.Palette) != len(def.Palette) {
		t.Errorf("all-invalid palette should fall back wholesale, got %v", got.Rain.Palette)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphrain.yaml")
	body := `
engine:
  fps: 30
rain:
  density: 1.2
  palette: ["#112233", "#445566"]
trail:
  max_particles: 48
unknown_section:
  ignored: true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.FPS != 30 {
		t.Errorf("fps %d, want 30", cfg.Engine.FPS)
	}
	if cfg.Rain.Density != 1.2 {
		t.Errorf("density %v, want 1.2", cfg.Rain.Density)
	}
	if len(cfg.Rain.Palette) != 2 || cfg.Rain.Palette[0] != "#112233" {
		t.Errorf("palette %v", cfg.Rain.Palette)
	}
	if cfg.Trail.MaxParticles != 48 {
		t.Errorf("max_particles %d, want 48", cfg.Trail.MaxParticles)
	}
	// Untouched keys keep their defaults
	def := Default()
	if cfg.Rain.MinSpeed != def.Rain.MinSpeed {
		t.Errorf("min_speed %v, want default %v", cfg.Rain.MinSpeed, def.Rain.MinSpeed)
	}
	if cfg.Trail.CharSet != def.Trail.CharSet {
		t.Errorf("trail charset %q, want default", cfg.Trail.CharSet)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rain: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML should error")
	}
}

func TestDurationHelpers(t *testing.T) {
	trail := Trail{ThrottleMs: 12, LifetimeMinMs: 400, LifetimeMaxMs: 1100}
	if trail.Throttle() != 12*time.Millisecond {
		t.Errorf("throttle %v", trail.Throttle())
	}
	if trail.LifetimeMin() != 400*time.Millisecond || trail.LifetimeMax() != 1100*time.Millisecond {
		t.Errorf("lifetimes %v %v", trail.LifetimeMin(), trail.LifetimeMax())
	}
	eng := Engine{ResizeDebounceMs: 150}
	if eng.ResizeDebounce() != 150*time.Millisecond {
		t.Errorf("debounce %v", eng.ResizeDebounce())
	}
}
